package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ridloal/hidayah-backoffice/internal/account/domain"
	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserConflict = errors.New("user with this username already exists")

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// Counts returns the number of records behind each dashboard menu.
	Counts(ctx context.Context) (domain.DashboardCounts, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (nama, username, email, phone, role, password_hash, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at, updated_at`

	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query, user.Nama, user.Username, user.Email, user.Phone, user.Role,
		user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		// Kode error '23505' adalah unique_violation
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUserConflict
		}
		logger.Error("CreateUser: failed to insert user", err)
		return err
	}
	return nil
}

func (r *postgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, nama, username, email, phone, role, password_hash, created_at, updated_at
              FROM users WHERE username = $1`
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Nama, &user.Username, &user.Email, &user.Phone, &user.Role,
		&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logger.Error("GetUserByUsername: query failed", err)
		return nil, err
	}
	return user, nil
}

// countQueries: laporan menghitung penjualan bulan berjalan, sisanya total baris tabel.
var countQueries = map[domain.MenuKey]string{
	domain.MenuKaryawan:    `SELECT COUNT(*) FROM employees`,
	domain.MenuDistributor: `SELECT COUNT(*) FROM distributors`,
	domain.MenuBarang:      `SELECT COUNT(*) FROM barang`,
	domain.MenuPelanggan:   `SELECT COUNT(*) FROM pelanggan`,
	domain.MenuPenjualan:   `SELECT COUNT(*) FROM penjualan`,
	domain.MenuJasa:        `SELECT COUNT(*) FROM jasa`,
	domain.MenuLaporan:     `SELECT COUNT(*) FROM penjualan WHERE created_at >= date_trunc('month', NOW())`,
	domain.MenuKategori:    `SELECT COUNT(*) FROM kategori`,
}

func (r *postgresUserRepository) Counts(ctx context.Context) (domain.DashboardCounts, error) {
	counts := make(domain.DashboardCounts, len(countQueries))
	for _, m := range domain.AllMenus {
		var n int64
		if err := r.db.QueryRowContext(ctx, countQueries[m.Key]).Scan(&n); err != nil {
			logger.Error("Counts: query failed for "+string(m.Key), err)
			return nil, err
		}
		counts[m.Key] = n
	}
	return counts, nil
}
