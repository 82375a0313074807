package user

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/UsersAPI_Go/internal/domain"
	"github.com/osse101/UsersAPI_Go/internal/pagination"
)

// InMemoryRepository is a Repository backed by a map guarded by a RWMutex.
// Insertion order is kept so that pages are stable between writes.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
	order []uuid.UUID
	newID func() uuid.UUID
}

// NewInMemoryRepository creates an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users: make(map[uuid.UUID]domain.User),
		newID: uuid.New,
	}
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	return &u, nil
}

func (r *InMemoryRepository) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = r.newID()
	}
	if _, exists := r.users[user.ID]; exists {
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrUserAlreadyExists, user.ID)
	}
	r.put(user)
	return user, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, user.ID)
	}
	r.users[user.ID] = user
	return nil
}

func (r *InMemoryRepository) Upsert(ctx context.Context, user domain.User) (bool, error) {
	if user.ID == uuid.Nil {
		return false, fmt.Errorf("%w: upsert requires an id", domain.ErrMalformedRequest)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; exists {
		r.users[user.ID] = user
		return false, nil
	}
	r.put(user)
	return true, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[id]; !exists {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	delete(r.users, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *InMemoryRepository) Page(ctx context.Context, pageNumber, pageSize int) ([]domain.User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.order)
	start, end := pagination.New(pageNumber, pageSize, total).Window(total)

	out := make([]domain.User, 0, end-start)
	for _, id := range r.order[start:end] {
		out = append(out, r.users[id])
	}
	return out, total, nil
}

func (r *InMemoryRepository) CheckHealth(ctx context.Context) error {
	return ctx.Err()
}

// Len returns the number of stored users.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// put stores a new user. Caller must hold the write lock.
func (r *InMemoryRepository) put(user domain.User) {
	r.users[user.ID] = user
	r.order = append(r.order, user.ID)
}
