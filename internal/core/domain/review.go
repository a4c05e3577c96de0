package domain

import "time"

// Review is an append-only note left by a client on a user's profile.
type Review struct {
	ID             string    `json:"id"`
	TargetUsername string    `json:"target_username"`
	AuthorUsername string    `json:"author_username"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}
