package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	"github.com/ridloal/hidayah-backoffice/internal/sales/domain"
)

type MockSalesService struct {
	mock.Mock
}

func (m *MockSalesService) CreateSale(ctx context.Context, req domain.CreateSaleRequest) (*domain.CreateSaleResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.CreateSaleResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSalesService) Monthly(ctx context.Context, filter domain.MonthlyFilter) ([]domain.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Sale), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSalesService) Today(ctx context.Context) ([]domain.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Sale), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSalesService) Delete(ctx context.Context, id rdomain.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
