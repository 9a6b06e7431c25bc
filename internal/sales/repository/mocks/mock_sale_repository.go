package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	"github.com/ridloal/hidayah-backoffice/internal/sales/domain"
	"github.com/ridloal/hidayah-backoffice/internal/sales/repository"
)

type MockSaleRepository struct {
	mock.Mock
}

// CreateSaleWithItems mimics the database: it assigns ids and fills the totals.
func (m *MockSaleRepository) CreateSaleWithItems(ctx context.Context, sale *domain.Sale) error {
	args := m.Called(ctx, sale)
	if sale != nil && args.Error(0) == nil {
		sale.ID = 99
		sale.PelangganName = "Mock Pelanggan"
		for i := range sale.Items {
			sale.Items[i].ID = rdomain.ID(i + 1)
			sale.Items[i].PenjualanID = sale.ID
		}
		sale.Harga = sale.LineTotal()
		sale.Kuantitas = sale.ItemCount()
	}
	return args.Error(0)
}

func (m *MockSaleRepository) ListBetween(ctx context.Context, start, end time.Time) ([]domain.Sale, error) {
	args := m.Called(ctx, start, end)
	if s := args.Get(0); s != nil {
		return s.([]domain.Sale), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id rdomain.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repository.SaleRepository = (*MockSaleRepository)(nil)
