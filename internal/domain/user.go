package domain

import "github.com/google/uuid"

// User is the stored representation of a user.
type User struct {
	ID        uuid.UUID
	Login     string
	FirstName string
	LastName  string
}
