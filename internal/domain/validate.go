package domain

import (
	"strconv"
)

// ParsePositiveInt parses a client-supplied numeric parameter (article id,
// comment id, limit, page). Only whole numbers >= 1 are accepted; non-numeric
// strings, zero, negatives and fractional values are rejected. Validation
// happens here, before any store access.
func ParsePositiveInt(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, NewValidationError(field, "must be a whole number")
	}
	if n < 1 {
		return 0, NewValidationError(field, "must be at least 1")
	}
	return n, nil
}

// IsNumericLike reports whether the whole string parses as a number. Used to
// reject bare-number values in fields that must be text (topic slugs, article
// titles, usernames) where a number indicates swapped or garbage input.
func IsNumericLike(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
