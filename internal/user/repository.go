package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/UsersAPI_Go/internal/domain"
)

// Repository defines the interface for user persistence.
// Every method is atomic on its own; there are no multi-call transactions.
type Repository interface {
	// FindByID returns domain.ErrUserNotFound when no user has id.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// Insert stores a new user, assigning an id when user.ID is uuid.Nil.
	// It returns domain.ErrUserAlreadyExists when the id is taken.
	Insert(ctx context.Context, user domain.User) (domain.User, error)
	// Update overwrites an existing user, or returns domain.ErrUserNotFound.
	Update(ctx context.Context, user domain.User) error
	// Upsert inserts the user when its id is absent and overwrites it
	// otherwise. created reports which branch ran.
	Upsert(ctx context.Context, user domain.User) (created bool, err error)
	// Delete removes a user, or returns domain.ErrUserNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
	// Page returns one window of users in insertion order and the total count.
	Page(ctx context.Context, pageNumber, pageSize int) ([]domain.User, int, error)
	// CheckHealth reports whether the store can serve requests.
	CheckHealth(ctx context.Context) error
}
