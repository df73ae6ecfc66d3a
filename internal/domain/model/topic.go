package model

import (
	"time"
)

// Topic groups questions under a named subject, scoped to the vehicle types
// it applies to. VehicleTypes holds vehicle type names by value and is kept
// duplicate-free.
type Topic struct {
	ID           string    `json:"id"`
	Topic        string    `json:"topic"`
	Slug         string    `json:"slug"`
	VehicleTypes []string  `json:"vehicleType"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MergeVehicleTypes unions extra into the stored set, preserving order of
// first appearance. It reports whether the set actually grew.
func (t *Topic) MergeVehicleTypes(extra []string) bool {
	seen := make(map[string]bool, len(t.VehicleTypes))
	for _, v := range t.VehicleTypes {
		seen[v] = true
	}
	grew := false
	for _, v := range extra {
		if !seen[v] {
			seen[v] = true
			t.VehicleTypes = append(t.VehicleTypes, v)
			grew = true
		}
	}
	return grew
}
