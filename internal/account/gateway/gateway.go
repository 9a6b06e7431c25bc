package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ridloal/hidayah-backoffice/internal/account/domain"
	rgateway "github.com/ridloal/hidayah-backoffice/internal/resource/gateway"
)

type AccountGateway struct {
	client *rgateway.Client
}

func New(client *rgateway.Client) *AccountGateway {
	return &AccountGateway{client: client}
}

// Login returns the user object from {"user": {...}}.
func (g *AccountGateway) Login(ctx context.Context, req domain.LoginRequest) (domain.User, error) {
	var resp domain.LoginResponse
	if err := g.client.Do(ctx, "account.login", http.MethodPost, "login", nil, req, &resp); err != nil {
		return domain.User{}, err
	}
	if resp.User.Username == "" || !resp.User.Role.Valid() {
		return domain.User{}, fmt.Errorf("account.login: server returned user %q with role %q", resp.User.Username, resp.User.Role)
	}
	return resp.User, nil
}

// Counts reads the flat {menu: count} object behind the dashboard.
func (g *AccountGateway) Counts(ctx context.Context) (domain.DashboardCounts, error) {
	counts := domain.DashboardCounts{}
	if err := g.client.Do(ctx, "dashboard.counts", http.MethodGet, "dashboard/counts", nil, nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
