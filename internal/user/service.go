package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/UsersAPI_Go/internal/domain"
	"github.com/osse101/UsersAPI_Go/internal/dto"
	"github.com/osse101/UsersAPI_Go/internal/logger"
	"github.com/osse101/UsersAPI_Go/internal/mapping"
	"github.com/osse101/UsersAPI_Go/internal/metrics"
	"github.com/osse101/UsersAPI_Go/internal/pagination"
	"github.com/osse101/UsersAPI_Go/internal/validation"
)

// Service defines the interface for user operations
type Service interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListUsers(ctx context.Context, pageNumber, pageSize int) (ListResult, error)
	CreateUser(ctx context.Context, in dto.UserToCreateDto) (domain.User, error)
	ReplaceUser(ctx context.Context, id uuid.UUID, in dto.UserToUpdateDto) (ReplaceResult, error)
	PatchUser(ctx context.Context, id uuid.UUID, doc PatchDocument) (domain.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	CheckHealth(ctx context.Context) error
	GetCacheStats() CacheStats
}

// ListResult is one page of users plus its navigation data.
type ListResult struct {
	Users []domain.User
	Page  pagination.Page
}

// ReplaceResult reports the outcome of a full replace. Created is true when
// the id did not exist and the user was inserted under it.
type ReplaceResult struct {
	User    domain.User
	Created bool
}

// service implements the Service interface
type service struct {
	repo      Repository
	rules     *mapping.Rules
	validator *validation.Validator
}

// NewService creates the reconciler over repo using the given mapping rules.
func NewService(repo Repository, rules *mapping.Rules, v *validation.Validator) Service {
	return &service{
		repo:      repo,
		rules:     rules,
		validator: v,
	}
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListUsers(ctx context.Context, pageNumber, pageSize int) (ListResult, error) {
	pageNumber, pageSize = pagination.Normalize(pageNumber, pageSize)

	users, total, err := s.repo.Page(ctx, pageNumber, pageSize)
	if err != nil {
		return ListResult{}, fmt.Errorf("failed to page users: %w", err)
	}

	return ListResult{
		Users: users,
		Page:  pagination.New(pageNumber, pageSize, total),
	}, nil
}

func (s *service) CreateUser(ctx context.Context, in dto.UserToCreateDto) (domain.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.ValidateStruct(in); err != nil {
		s.record(OpCreate, err)
		log.Debug("Create rejected", "error", err)
		return domain.User{}, err
	}

	stored, err := s.repo.Insert(ctx, s.rules.FromCreate(in))
	if err != nil {
		s.record(OpCreate, err)
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	metrics.RecordUserOperation(OpCreate, OutcomeCreated)
	metrics.UsersStored.Inc()
	log.Info("User created", "user_id", stored.ID, "login", stored.Login)
	return stored, nil
}

func (s *service) ReplaceUser(ctx context.Context, id uuid.UUID, in dto.UserToUpdateDto) (ReplaceResult, error) {
	log := logger.FromContext(ctx)

	if id == uuid.Nil {
		return ReplaceResult{}, fmt.Errorf("%w: user id is empty", domain.ErrMalformedRequest)
	}

	if err := s.validator.ValidateStruct(in); err != nil {
		s.record(OpReplace, err)
		log.Debug("Replace rejected", "user_id", id, "error", err)
		return ReplaceResult{}, err
	}

	user := s.rules.FromUpdate(id, in)
	created, err := s.repo.Upsert(ctx, user)
	if err != nil {
		s.record(OpReplace, err)
		return ReplaceResult{}, fmt.Errorf("failed to upsert user: %w", err)
	}

	if created {
		metrics.RecordUserOperation(OpReplace, OutcomeCreated)
		metrics.UsersStored.Inc()
		log.Info("User created by replace", "user_id", id, "login", user.Login)
	} else {
		metrics.RecordUserOperation(OpReplace, OutcomeUpdated)
		log.Info("User replaced", "user_id", id, "login", user.Login)
	}

	return ReplaceResult{User: user, Created: created}, nil
}

func (s *service) PatchUser(ctx context.Context, id uuid.UUID, doc PatchDocument) (domain.User, error) {
	log := logger.FromContext(ctx)

	if doc == nil {
		return domain.User{}, fmt.Errorf("%w: patch document is missing", domain.ErrMalformedRequest)
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.record(OpPatch, err)
		return domain.User{}, err
	}

	// Operations are only judged against a user that exists.
	patch, err := doc.Resolve()
	if err != nil {
		s.record(OpPatch, err)
		log.Debug("Patch document rejected", "user_id", id, "error", err)
		return domain.User{}, err
	}

	view := s.rules.ToUpdateView(*current)
	patch.ApplyTo(&view)

	if err := s.validator.ValidateStruct(view); err != nil {
		s.record(OpPatch, err)
		log.Debug("Patch rejected", "user_id", id, "error", err)
		return domain.User{}, err
	}

	updated := *current
	s.rules.MergeUpdateView(view, &updated)

	if err := s.repo.Update(ctx, updated); err != nil {
		s.record(OpPatch, err)
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	metrics.RecordUserOperation(OpPatch, OutcomeUpdated)
	log.Info("User patched", "user_id", id, "fields", len(patch))
	return updated, nil
}

func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.record(OpDelete, err)
		return err
	}

	metrics.RecordUserOperation(OpDelete, OutcomeDeleted)
	metrics.UsersStored.Dec()
	logger.FromContext(ctx).Info("User deleted", "user_id", id)
	return nil
}

func (s *service) CheckHealth(ctx context.Context) error {
	return s.repo.CheckHealth(ctx)
}

// GetCacheStats reports the read-through cache counters, or zeros when the
// store is not cached.
func (s *service) GetCacheStats() CacheStats {
	stats, _ := StatsOf(s.repo)
	return stats
}

// record counts a failed write by error kind.
func (s *service) record(op string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidationFailed):
		metrics.RecordUserOperation(op, OutcomeInvalid)
	case errors.Is(err, domain.ErrUserNotFound):
		metrics.RecordUserOperation(op, OutcomeNotFound)
	default:
		metrics.RecordUserOperation(op, OutcomeFailed)
	}
}
