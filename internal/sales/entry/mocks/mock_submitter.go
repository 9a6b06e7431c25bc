package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/hidayah-backoffice/internal/sales/domain"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, req domain.CreateSaleRequest) (domain.CreateSaleResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.CreateSaleResponse), args.Error(1)
}
