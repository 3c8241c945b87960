package comment

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"ascended/pkg/user"
)

// MaxLength is the longest comment accepted, counted in runes.
const MaxLength = 500

var (
	ErrEmpty   = errors.New("comment can't be empty")
	ErrTooLong = errors.New("comment is longer than 500 characters")
)

type Comment struct {
	Id        string       `json:"id" bson:"id"`
	PostId    string       `json:"postId" bson:"postId"`
	Author    *user.Author `json:"author" bson:"author"`
	Content   string       `json:"content" bson:"content"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
}

// Validate trims the content and checks its length.
func Validate(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxLength {
		return "", ErrTooLong
	}
	return trimmed, nil
}
