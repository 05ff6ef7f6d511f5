package models

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserPatch holds profile changes; nil means keep
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}
