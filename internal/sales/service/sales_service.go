package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	"github.com/ridloal/hidayah-backoffice/internal/sales/domain"
	"github.com/ridloal/hidayah-backoffice/internal/sales/repository"
)

var (
	ErrEmptySale         = errors.New("penjualan harus berisi minimal satu barang atau jasa")
	ErrTotalMismatch     = errors.New("harga tidak sesuai dengan total item")
	ErrSaleNotFound      = errors.New("penjualan tidak ditemukan")
	ErrPelangganNotFound = errors.New("pelanggan tidak ditemukan")
	ErrItemUnavailable   = errors.New("item tidak tersedia")
	ErrSaleFailed        = errors.New("penjualan gagal disimpan")
)

const MsgSaleCreated = "Penjualan berhasil disimpan"

type SalesService interface {
	CreateSale(ctx context.Context, req domain.CreateSaleRequest) (*domain.CreateSaleResponse, error)
	Monthly(ctx context.Context, filter domain.MonthlyFilter) ([]domain.Sale, error)
	Today(ctx context.Context) ([]domain.Sale, error)
	Delete(ctx context.Context, id rdomain.ID) error
}

type salesServiceImpl struct {
	repo repository.SaleRepository
	loc  *time.Location
	now  func() time.Time
}

// NewSalesService groups sales by calendar day and month in loc.
func NewSalesService(repo repository.SaleRepository, loc *time.Location) SalesService {
	if loc == nil {
		loc = time.Local
	}
	return &salesServiceImpl{repo: repo, loc: loc, now: time.Now}
}

func (s *salesServiceImpl) CreateSale(ctx context.Context, req domain.CreateSaleRequest) (*domain.CreateSaleResponse, error) {
	if req.LineCount() == 0 {
		return nil, ErrEmptySale
	}
	// Harga kosong berarti client menyerahkan perhitungan ke server
	if !req.Harga.IsZero() && !req.Harga.Equal(req.Total()) {
		return nil, fmt.Errorf("%w: dikirim %s, dihitung %s", ErrTotalMismatch, req.Harga.String(), req.Total().String())
	}

	sale := &domain.Sale{PelangganID: req.PelangganID}
	for _, l := range req.Barang {
		sale.Items = append(sale.Items, domain.SaleItem{
			ItemType:    domain.ItemBarang,
			ItemID:      l.IDBarang,
			NamaBarang:  l.NamaBarang,
			Kuantitas:   l.Kuantitas,
			HargaSatuan: l.HargaSatuan,
		})
	}
	for _, l := range req.Jasa {
		sale.Items = append(sale.Items, domain.SaleItem{
			ItemType:    domain.ItemJasa,
			ItemID:      l.IDJasa,
			NamaBarang:  l.NamaJasa,
			Kuantitas:   l.Kuantitas,
			HargaSatuan: l.HargaSatuan,
		})
	}

	if err := s.repo.CreateSaleWithItems(ctx, sale); err != nil {
		switch {
		case errors.Is(err, repository.ErrPelangganNotFound):
			return nil, ErrPelangganNotFound
		case errors.Is(err, repository.ErrItemNotFound),
			errors.Is(err, repository.ErrInsufficientStock),
			errors.Is(err, repository.ErrPriceChanged):
			return nil, fmt.Errorf("%w: %v", ErrItemUnavailable, err)
		}
		logger.Error("CreateSale: failed to save penjualan", err)
		return nil, fmt.Errorf("%w: %v", ErrSaleFailed, err)
	}

	logger.Info("Penjualan %d disimpan untuk pelanggan %d, harga %s", sale.ID, sale.PelangganID, sale.Harga.String())
	return &domain.CreateSaleResponse{Message: MsgSaleCreated, Data: *sale}, nil
}

func (s *salesServiceImpl) Monthly(ctx context.Context, filter domain.MonthlyFilter) ([]domain.Sale, error) {
	start, end := filter.Range(s.loc)
	sales, err := s.repo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("could not list penjualan %s %d: %w", domain.MonthName(filter.Bulan), filter.Tahun, err)
	}
	return sales, nil
}

func (s *salesServiceImpl) Today(ctx context.Context) ([]domain.Sale, error) {
	now := s.now().In(s.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	sales, err := s.repo.ListBetween(ctx, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("could not list today's penjualan: %w", err)
	}
	return sales, nil
}

func (s *salesServiceImpl) Delete(ctx context.Context, id rdomain.ID) error {
	if id <= 0 {
		return ErrSaleNotFound
	}
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrSaleNotFound) {
		return ErrSaleNotFound
	}
	if err != nil {
		logger.Error(fmt.Sprintf("Delete penjualan %d: repository error", id), err)
		return fmt.Errorf("could not delete penjualan %d: %w", id, err)
	}
	return nil
}
