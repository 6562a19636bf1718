package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePositiveInt(t *testing.T) {
	t.Run("accepts whole numbers from one up", func(t *testing.T) {
		for value, want := range map[string]int{"1": 1, "10": 10, "999": 999} {
			got, err := ParsePositiveInt("limit", value)
			require.NoError(t, err, value)
			assert.Equal(t, want, got)
		}
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, value := range []string{"0", "-1", "1.5", "abc", "", "1e3", " 1", "0x10"} {
			_, err := ParsePositiveInt("limit", value)
			require.Error(t, err, value)
			assert.True(t, errors.Is(err, ErrInvalidInput), value)
		}
	})
}

func TestIsNumericLike(t *testing.T) {
	for _, s := range []string{"42", "-1", "3.14", "1e10"} {
		assert.True(t, IsNumericLike(s), s)
	}
	for _, s := range []string{"mitch", "42nd street", "", "butter_bridge"} {
		assert.False(t, IsNumericLike(s), s)
	}
}

func TestNewArticleValidate(t *testing.T) {
	valid := NewArticle{Author: "butter_bridge", Title: "A title", Body: "words", Topic: "mitch"}
	assert.NoError(t, valid.Validate())

	t.Run("every field is required", func(t *testing.T) {
		for _, mutate := range []func(*NewArticle){
			func(a *NewArticle) { a.Author = "" },
			func(a *NewArticle) { a.Title = "" },
			func(a *NewArticle) { a.Body = "" },
			func(a *NewArticle) { a.Topic = "" },
		} {
			a := valid
			mutate(&a)
			assert.True(t, errors.Is(a.Validate(), ErrInvalidInput))
		}
	})

	t.Run("bare numbers are rejected", func(t *testing.T) {
		a := valid
		a.Title = "12345"
		assert.True(t, errors.Is(a.Validate(), ErrInvalidInput))
	})
}

func TestNewCommentValidate(t *testing.T) {
	assert.NoError(t, NewComment{Username: "butter_bridge", Body: "x"}.Validate())
	assert.True(t, errors.Is(NewComment{Body: "x"}.Validate(), ErrInvalidInput))
	assert.True(t, errors.Is(NewComment{Username: "butter_bridge"}.Validate(), ErrInvalidInput))
}

func TestNotFoundWordings(t *testing.T) {
	assert.Equal(t, "mitch not found", NewTopicNotFound("mitch").Error())
	assert.Equal(t, "Article 4 Is Not In The Database", NewArticleNotFound(4).Error())
	assert.Equal(t, "999 Not Found In The Database", NewCommentNotFound(999).Error())
	assert.Equal(t, "Username Not Found", NewUsernameNotFound().Error())
	assert.Equal(t, "Not Found In The Database", NewGenericNotFound().Error())

	assert.True(t, errors.Is(NewTopicNotFound("mitch"), ErrNotFound))
	assert.True(t, errors.Is(NewValidationError("order", "bad"), ErrInvalidInput))
}
