package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/hidayah-backoffice/internal/account/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if user != nil && args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Counts(ctx context.Context) (domain.DashboardCounts, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.(domain.DashboardCounts), args.Error(1)
	}
	return nil, args.Error(1)
}
