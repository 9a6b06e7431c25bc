package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

type MockGateway[T domain.Record] struct {
	mock.Mock
}

func (m *MockGateway[T]) List(ctx context.Context, q domain.Query) ([]T, error) {
	args := m.Called(ctx, q)
	if res := args.Get(0); res != nil {
		return res.([]T), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway[T]) Create(ctx context.Context, fields T) (T, error) {
	args := m.Called(ctx, fields)
	var zero T
	if res := args.Get(0); res != nil {
		return res.(T), args.Error(1)
	}
	return zero, args.Error(1)
}

func (m *MockGateway[T]) Update(ctx context.Context, id domain.ID, fields T) (T, error) {
	args := m.Called(ctx, id, fields)
	var zero T
	if res := args.Get(0); res != nil {
		return res.(T), args.Error(1)
	}
	return zero, args.Error(1)
}

func (m *MockGateway[T]) Remove(ctx context.Context, id domain.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
