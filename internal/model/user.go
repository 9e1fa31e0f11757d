// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data. The `json:"..."` tags decide how
// each field appears in API responses; snake_case keys match the column names.
package model

import "time"

// User is a registered author.
//
// ID and CreatedAt are assigned by the store on insert, never by the client.
// Email is unique across all users (enforced by a UNIQUE index).
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
