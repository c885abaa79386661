package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MinTextLength is the minimum number of characters a text must carry.
const MinTextLength = 5

// Text is a piece of content submitted by a user for classification.
type Text struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	UserID      int64     `json:"userId"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// HasValidLength reports whether the content meets MinTextLength, counted in
// runes. Blank content never does.
func (t *Text) HasValidLength() bool {
	if strings.TrimSpace(t.Content) == "" {
		return false
	}
	return utf8.RuneCountInString(t.Content) >= MinTextLength
}
