package domain

import "time"

// User owns texts and predictions. Email is unique case-insensitively.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`

	// TextCount is populated by list queries only.
	TextCount int `json:"textCount"`
}
