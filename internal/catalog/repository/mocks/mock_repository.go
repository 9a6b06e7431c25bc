package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/hidayah-backoffice/internal/catalog/domain"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

type MockRepository[T domain.Entity[T]] struct {
	mock.Mock
}

func (m *MockRepository[T]) List(ctx context.Context, q rdomain.Query) ([]T, error) {
	args := m.Called(ctx, q)
	if args.Get(0) != nil {
		return args.Get(0).([]T), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository[T]) Create(ctx context.Context, rec T) (T, error) {
	args := m.Called(ctx, rec)
	var zero T
	if args.Get(0) != nil {
		return args.Get(0).(T), args.Error(1)
	}
	return zero, args.Error(1)
}

func (m *MockRepository[T]) Update(ctx context.Context, id rdomain.ID, rec T) (T, error) {
	args := m.Called(ctx, id, rec)
	var zero T
	if args.Get(0) != nil {
		return args.Get(0).(T), args.Error(1)
	}
	return zero, args.Error(1)
}

func (m *MockRepository[T]) Delete(ctx context.Context, id rdomain.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository[T]) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
