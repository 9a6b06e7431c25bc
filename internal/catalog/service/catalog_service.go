package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ridloal/hidayah-backoffice/internal/catalog/domain"
	"github.com/ridloal/hidayah-backoffice/internal/catalog/repository"
	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	"github.com/ridloal/hidayah-backoffice/internal/platform/validation"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

var (
	ErrNotFound      = errors.New("data tidak ditemukan")
	ErrAlreadyExists = errors.New("data dengan nilai yang sama sudah ada")
)

type CatalogService[T domain.Entity[T]] interface {
	List(ctx context.Context, q rdomain.Query) ([]T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id rdomain.ID, rec T) (T, error)
	Delete(ctx context.Context, id rdomain.ID) error
}

type catalogService[T domain.Entity[T]] struct {
	repo repository.Repository[T]
}

func NewCatalogService[T domain.Entity[T]](repo repository.Repository[T]) CatalogService[T] {
	return &catalogService[T]{repo: repo}
}

func (s *catalogService[T]) List(ctx context.Context, q rdomain.Query) ([]T, error) {
	if q.Sort == "" {
		q.Sort = rdomain.SortLatest
	}
	items, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("could not list %s: %w", tableOf[T](), err)
	}
	return items, nil
}

func (s *catalogService[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	rec, err := s.prepare(rec)
	if err != nil {
		return zero, err
	}
	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return zero, s.mapErr("Create", err)
	}
	return created, nil
}

func (s *catalogService[T]) Update(ctx context.Context, id rdomain.ID, rec T) (T, error) {
	var zero T
	if id <= 0 {
		return zero, ErrNotFound
	}
	rec, err := s.prepare(rec)
	if err != nil {
		return zero, err
	}
	updated, err := s.repo.Update(ctx, id, rec)
	if err != nil {
		return zero, s.mapErr("Update", err)
	}
	return updated, nil
}

func (s *catalogService[T]) Delete(ctx context.Context, id rdomain.ID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapErr("Delete", err)
	}
	return nil
}

func (s *catalogService[T]) prepare(rec T) (T, error) {
	var zero T
	rec = rec.Normalize()
	if err := validation.Validator().Struct(rec); err != nil {
		if fields := validation.Fields(err); len(fields) > 0 {
			return zero, rdomain.ValidationErrors(fields)
		}
		return zero, fmt.Errorf("validate %s: %w", tableOf[T](), err)
	}
	return rec, nil
}

func (s *catalogService[T]) mapErr(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrAlreadyExists
	default:
		logger.Error(fmt.Sprintf("%s %s: repository error", op, tableOf[T]()), err)
		return fmt.Errorf("could not %s %s: %w", op, tableOf[T](), err)
	}
}

func tableOf[T domain.Entity[T]]() string {
	var zero T
	return zero.TableName()
}
