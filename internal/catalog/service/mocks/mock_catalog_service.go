package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/hidayah-backoffice/internal/catalog/domain"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

type MockCatalogService[T domain.Entity[T]] struct {
	mock.Mock
}

func (m *MockCatalogService[T]) List(ctx context.Context, q rdomain.Query) ([]T, error) {
	args := m.Called(ctx, q)
	if args.Get(0) != nil {
		return args.Get(0).([]T), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogService[T]) Create(ctx context.Context, rec T) (T, error) {
	args := m.Called(ctx, rec)
	var zero T
	if args.Get(0) != nil {
		return args.Get(0).(T), args.Error(1)
	}
	return zero, args.Error(1)
}

func (m *MockCatalogService[T]) Update(ctx context.Context, id rdomain.ID, rec T) (T, error) {
	args := m.Called(ctx, id, rec)
	var zero T
	if args.Get(0) != nil {
		return args.Get(0).(T), args.Error(1)
	}
	return zero, args.Error(1)
}

func (m *MockCatalogService[T]) Delete(ctx context.Context, id rdomain.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
