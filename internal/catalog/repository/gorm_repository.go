package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ridloal/hidayah-backoffice/internal/catalog/domain"
	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with an existing one")
)

const uniqueViolation = "23505"

type Repository[T domain.Entity[T]] interface {
	List(ctx context.Context, q rdomain.Query) ([]T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id rdomain.ID, rec T) (T, error)
	Delete(ctx context.Context, id rdomain.ID) error
	Count(ctx context.Context) (int64, error)
}

type gormRepository[T domain.Entity[T]] struct {
	db *gorm.DB
}

func NewGormRepository[T domain.Entity[T]](db *gorm.DB) Repository[T] {
	return &gormRepository[T]{db: db}
}

func (r *gormRepository[T]) table() string {
	var zero T
	return zero.TableName()
}

func (r *gormRepository[T]) List(ctx context.Context, q rdomain.Query) ([]T, error) {
	var zero T
	tx := r.db.WithContext(ctx).Model(new(T))
	if term := strings.TrimSpace(q.Search); term != "" {
		tx = tx.Where(fmt.Sprintf("%s ILIKE ?", zero.SearchColumn()), "%"+term+"%")
	}
	tx = tx.Order(OrderFor(q.Sort, zero.SearchColumn(), zero.PrimaryKey()))

	items := []T{}
	if err := tx.Find(&items).Error; err != nil {
		logger.Error(fmt.Sprintf("List %s: query failed", r.table()), err)
		return nil, err
	}
	return items, nil
}

func (r *gormRepository[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	rec = rec.WithID(0)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return zero, ErrConflict
		}
		logger.Error(fmt.Sprintf("Create %s: insert failed", r.table()), err)
		return zero, err
	}
	return rec, nil
}

// Update is a full replace of every column except the key and created_at.
func (r *gormRepository[T]) Update(ctx context.Context, id rdomain.ID, rec T) (T, error) {
	var zero T
	pk := zero.PrimaryKey()
	db := r.db.WithContext(ctx)

	var current T
	if err := db.Where(pk+" = ?", id).First(&current).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, ErrNotFound
		}
		logger.Error(fmt.Sprintf("Update %s: lookup failed", r.table()), err)
		return zero, err
	}

	rec = rec.WithID(id)
	if err := db.Model(&current).Select("*").Omit(pk, "created_at").Updates(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return zero, ErrConflict
		}
		logger.Error(fmt.Sprintf("Update %s: update failed", r.table()), err)
		return zero, err
	}

	var updated T
	if err := db.Where(pk+" = ?", id).First(&updated).Error; err != nil {
		logger.Error(fmt.Sprintf("Update %s: reload failed", r.table()), err)
		return zero, err
	}
	return updated, nil
}

func (r *gormRepository[T]) Delete(ctx context.Context, id rdomain.ID) error {
	var zero T
	res := r.db.WithContext(ctx).Where(zero.PrimaryKey()+" = ?", id).Delete(new(T))
	if res.Error != nil {
		logger.Error(fmt.Sprintf("Delete %s: exec failed", r.table()), res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepository[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		logger.Error(fmt.Sprintf("Count %s: query failed", r.table()), err)
		return 0, err
	}
	return n, nil
}

// OrderFor maps a sort key to ORDER BY. Unknown keys fall back to newest first.
func OrderFor(sort rdomain.Sort, nameCol, pkCol string) clause.OrderBy {
	col := func(name string, desc bool) clause.OrderByColumn {
		return clause.OrderByColumn{Column: clause.Column{Name: name}, Desc: desc}
	}
	switch sort {
	case rdomain.SortOldest:
		return clause.OrderBy{Columns: []clause.OrderByColumn{col("created_at", false), col(pkCol, false)}}
	case rdomain.SortAZ:
		return clause.OrderBy{Columns: []clause.OrderByColumn{col(nameCol, false), col(pkCol, false)}}
	case rdomain.SortZA:
		return clause.OrderBy{Columns: []clause.OrderByColumn{col(nameCol, true), col(pkCol, true)}}
	default:
		return clause.OrderBy{Columns: []clause.OrderByColumn{col("created_at", true), col(pkCol, true)}}
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
