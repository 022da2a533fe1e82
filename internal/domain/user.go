package domain

import "time"

// User is the domain model for catalog accounts. IsAdmin grants product
// management capability; ordinary flows never change it after creation
// (there is no self-promotion endpoint).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
