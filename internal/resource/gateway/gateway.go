package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

// Gateway translates domain operations into calls against {base}/{resource}.
type Gateway[T domain.Record] interface {
	List(ctx context.Context, q domain.Query) ([]T, error)
	Create(ctx context.Context, fields T) (T, error)
	// Update is a full replace: every editable field is resent.
	Update(ctx context.Context, id domain.ID, fields T) (T, error)
	Remove(ctx context.Context, id domain.ID) error
}

type HTTPGateway[T domain.Record] struct {
	client   *Client
	resource string
}

func NewHTTPGateway[T domain.Record](client *Client, resource string) *HTTPGateway[T] {
	return &HTTPGateway[T]{client: client, resource: resource}
}

func (g *HTTPGateway[T]) Resource() string { return g.resource }

func (g *HTTPGateway[T]) op(name string) string { return g.resource + "." + name }

func (g *HTTPGateway[T]) List(ctx context.Context, q domain.Query) ([]T, error) {
	params := url.Values{}
	params.Set("search", q.Search)
	params.Set("sort", string(q.Sort))

	var env Envelope[[]T]
	if err := g.client.Do(ctx, g.op("list"), http.MethodGet, g.resource, params, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []T{}, nil
	}
	return env.Data, nil
}

func (g *HTTPGateway[T]) Create(ctx context.Context, fields T) (T, error) {
	return g.write(ctx, "create", http.MethodPost, g.resource, fields)
}

func (g *HTTPGateway[T]) Update(ctx context.Context, id domain.ID, fields T) (T, error) {
	return g.write(ctx, "update", http.MethodPut, fmt.Sprintf("%s/%s", g.resource, id), fields)
}

func (g *HTTPGateway[T]) Remove(ctx context.Context, id domain.ID) error {
	return g.client.Do(ctx, g.op("remove"), http.MethodDelete, fmt.Sprintf("%s/%s", g.resource, id), nil, nil, nil)
}

func (g *HTTPGateway[T]) write(ctx context.Context, name, method, path string, fields T) (T, error) {
	var zero T
	var env Envelope[T]
	if err := g.client.Do(ctx, g.op(name), method, path, nil, fields, &env); err != nil {
		return zero, err
	}
	if env.Data.RecordID() == 0 {
		return zero, fmt.Errorf("%s: %w", g.op(name), ErrMissingID)
	}
	return env.Data, nil
}
