package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	rgateway "github.com/ridloal/hidayah-backoffice/internal/resource/gateway"
	"github.com/ridloal/hidayah-backoffice/internal/sales/domain"
)

const resource = "penjualan"

var (
	ErrNoPeriod = errors.New("monthly report needs a month and year")
	ErrReadOnly = errors.New("sales reports are read-only; use the cart to record a sale")
)

type SalesGateway struct {
	client *rgateway.Client
}

func New(client *rgateway.Client) *SalesGateway {
	return &SalesGateway{client: client}
}

// Monthly groups sales on the server by month and year.
func (g *SalesGateway) Monthly(ctx context.Context, f domain.MonthlyFilter) ([]domain.Sale, error) {
	var env rgateway.Envelope[[]domain.Sale]
	if err := g.client.Do(ctx, "penjualan.monthly", http.MethodPost, resource+"/monthly", nil, f, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []domain.Sale{}, nil
	}
	return env.Data, nil
}

func (g *SalesGateway) Today(ctx context.Context) ([]domain.Sale, error) {
	var env rgateway.Envelope[[]domain.Sale]
	if err := g.client.Do(ctx, "penjualan.today", http.MethodGet, "penjualans/today", nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []domain.Sale{}, nil
	}
	return env.Data, nil
}

func (g *SalesGateway) Submit(ctx context.Context, req domain.CreateSaleRequest) (domain.CreateSaleResponse, error) {
	var resp domain.CreateSaleResponse
	if err := g.client.Do(ctx, "penjualan.create", http.MethodPost, resource, nil, req, &resp); err != nil {
		return domain.CreateSaleResponse{}, err
	}
	return resp, nil
}

func (g *SalesGateway) Remove(ctx context.Context, id rdomain.ID) error {
	return g.client.Do(ctx, "penjualan.remove", http.MethodDelete, fmt.Sprintf("%s/%s", resource, id), nil, nil, nil)
}

// MonthlySource lets the generic store hold a monthly report: List reads Query.Period.
type MonthlySource struct {
	*SalesGateway
}

func (s MonthlySource) List(ctx context.Context, q rdomain.Query) ([]domain.Sale, error) {
	if q.Period == nil {
		return nil, ErrNoPeriod
	}
	return s.Monthly(ctx, domain.MonthlyFilter{Bulan: q.Period.Month, Tahun: q.Period.Year})
}

func (s MonthlySource) Create(context.Context, domain.Sale) (domain.Sale, error) {
	return domain.Sale{}, ErrReadOnly
}

func (s MonthlySource) Update(context.Context, rdomain.ID, domain.Sale) (domain.Sale, error) {
	return domain.Sale{}, ErrReadOnly
}

// TodaySource feeds the history tab; the query is ignored.
type TodaySource struct {
	*SalesGateway
}

func (s TodaySource) List(ctx context.Context, _ rdomain.Query) ([]domain.Sale, error) {
	return s.Today(ctx)
}

func (s TodaySource) Create(context.Context, domain.Sale) (domain.Sale, error) {
	return domain.Sale{}, ErrReadOnly
}

func (s TodaySource) Update(context.Context, rdomain.ID, domain.Sale) (domain.Sale, error) {
	return domain.Sale{}, ErrReadOnly
}

var (
	_ rgateway.Gateway[domain.Sale] = MonthlySource{}
	_ rgateway.Gateway[domain.Sale] = TodaySource{}
)
