package model

import (
	"time"
)

const RoleAdmin = "admin"

type Admin struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"password,omitempty"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Redacted returns a copy safe to put on the wire.
func (a Admin) Redacted() Admin {
	a.HashedPassword = ""
	return a
}
