// Package domain provides domain models and business rules for the news service.
package domain

import (
	"time"
)

// Article is a news article as stored, plus the derived CommentCount.
// CommentCount is computed per query from the live comments table and is
// never persisted.
type Article struct {
	ArticleID    int
	Title        string
	Topic        string
	Author       string
	Body         string
	CreatedAt    time.Time
	Votes        int
	CommentCount int
}

// Comment is a user comment attached to an article.
type Comment struct {
	CommentID int
	ArticleID int
	Author    string
	Body      string
	Votes     int
	CreatedAt time.Time
}

// Topic is a category articles are filed under. Slug is the unique textual
// identifier used in URLs and as the foreign key on articles.
type Topic struct {
	Slug        string
	Description string
}

// User is a registered author. Users are read-only in this service.
type User struct {
	Username  string
	Name      string
	AvatarURL string
}

// NewArticle is the validated input for creating an article.
type NewArticle struct {
	Author string
	Title  string
	Body   string
	Topic  string
}

// Validate checks that every field is present and that none of them is a
// bare number, which almost always indicates swapped or garbage input.
func (a NewArticle) Validate() error {
	for field, value := range map[string]string{
		"author": a.Author,
		"title":  a.Title,
		"body":   a.Body,
		"topic":  a.Topic,
	} {
		if value == "" {
			return NewValidationError(field, "is required")
		}
		if IsNumericLike(value) {
			return NewValidationError(field, "must not be numeric")
		}
	}
	return nil
}

// NewComment is the validated input for posting a comment on an article.
type NewComment struct {
	Username string
	Body     string
}

// Validate checks that both fields are present.
func (c NewComment) Validate() error {
	if c.Username == "" {
		return NewValidationError("username", "is required")
	}
	if c.Body == "" {
		return NewValidationError("body", "is required")
	}
	return nil
}

// NewTopic is the validated input for creating a topic.
type NewTopic struct {
	Slug        string
	Description string
}

// Validate checks that slug and description are present and not bare numbers.
func (t NewTopic) Validate() error {
	for field, value := range map[string]string{
		"slug":        t.Slug,
		"description": t.Description,
	} {
		if value == "" {
			return NewValidationError(field, "is required")
		}
		if IsNumericLike(value) {
			return NewValidationError(field, "must not be numeric")
		}
	}
	return nil
}
