package model

import (
	"time"
)

type VehicleType struct {
	ID        string    `json:"id"`
	Name      string    `json:"vehicle"`
	Slug      string    `json:"slug"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
