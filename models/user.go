package models

import "time"

type User struct {
	ID            string    `json:"id"`
	PublicSlug    *string   `json:"publicSlug"`
	PublicEnabled bool      `json:"publicEnabled"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ProfileInput struct {
	Public bool `json:"public"`
}
