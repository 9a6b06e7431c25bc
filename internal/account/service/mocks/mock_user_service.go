package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/hidayah-backoffice/internal/account/domain"
	"github.com/ridloal/hidayah-backoffice/internal/account/service"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*domain.LoginResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) EnsureUsers(ctx context.Context, users []service.SeedUser) error {
	args := m.Called(ctx, users)
	return args.Error(0)
}

func (m *MockUserService) Counts(ctx context.Context) (domain.DashboardCounts, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.(domain.DashboardCounts), args.Error(1)
	}
	return nil, args.Error(1)
}
