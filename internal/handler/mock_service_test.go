package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/UsersAPI_Go/internal/domain"
	"github.com/osse101/UsersAPI_Go/internal/dto"
	"github.com/osse101/UsersAPI_Go/internal/user"
)

// MockUserService is a testify mock of user.Service
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, pageNumber, pageSize int) (user.ListResult, error) {
	args := m.Called(ctx, pageNumber, pageSize)
	return args.Get(0).(user.ListResult), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, in dto.UserToCreateDto) (domain.User, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserService) ReplaceUser(ctx context.Context, id uuid.UUID, in dto.UserToUpdateDto) (user.ReplaceResult, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(user.ReplaceResult), args.Error(1)
}

func (m *MockUserService) PatchUser(ctx context.Context, id uuid.UUID, doc user.PatchDocument) (domain.User, error) {
	args := m.Called(ctx, id, doc)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserService) CheckHealth(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUserService) GetCacheStats() user.CacheStats {
	args := m.Called()
	return args.Get(0).(user.CacheStats)
}
