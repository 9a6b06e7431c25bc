package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
	"github.com/ridloal/hidayah-backoffice/internal/sales/domain"
)

var (
	ErrSaleNotFound      = errors.New("penjualan not found")
	ErrPelangganNotFound = errors.New("pelanggan not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPriceChanged      = errors.New("item price has changed")
)

type SaleRepository interface {
	// CreateSaleWithItems prices every line from the catalog, takes barang stock
	// and stores the sale, all in one transaction.
	CreateSaleWithItems(ctx context.Context, sale *domain.Sale) error
	ListBetween(ctx context.Context, start, end time.Time) ([]domain.Sale, error)
	// Delete removes the sale and gives its barang stock back.
	Delete(ctx context.Context, id rdomain.ID) error
}

type postgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) SaleRepository {
	return &postgresSaleRepository{db: db}
}

var catalogTables = map[domain.ItemType]string{
	domain.ItemBarang: "barang",
	domain.ItemJasa:   "jasa",
}

func (r *postgresSaleRepository) CreateSaleWithItems(ctx context.Context, sale *domain.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("CreateSaleWithItems: failed to begin tx", err)
		return err
	}
	defer tx.Rollback() // no-op setelah Commit

	err = tx.QueryRowContext(ctx, `SELECT name FROM pelanggan WHERE id = $1`, sale.PelangganID).Scan(&sale.PelangganName)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: id %d", ErrPelangganNotFound, sale.PelangganID)
	}
	if err != nil {
		logger.Error("CreateSaleWithItems: failed to read pelanggan", err)
		return err
	}

	for i := range sale.Items {
		if err := r.priceLine(ctx, tx, &sale.Items[i]); err != nil {
			return err
		}
	}

	now := time.Now()
	sale.CreatedAt, sale.UpdatedAt = now, now
	sale.Harga = sale.LineTotal()
	sale.Kuantitas = sale.ItemCount()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO penjualan (pelanggan_id, pelanggan_name, harga, kuantitas, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		sale.PelangganID, sale.PelangganName, sale.Harga, sale.Kuantitas, sale.CreatedAt, sale.UpdatedAt).
		Scan(&sale.ID)
	if err != nil {
		logger.Error("CreateSaleWithItems: failed to insert penjualan", err)
		return err
	}

	itemStmt, err := tx.PrepareContext(ctx, `INSERT INTO penjualan_items
        (penjualan_id, item_type, item_id, nama_barang, kuantitas, harga_satuan, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`)
	if err != nil {
		logger.Error("CreateSaleWithItems: failed to prepare item statement", err)
		return err
	}
	defer itemStmt.Close()

	for i := range sale.Items {
		it := &sale.Items[i]
		it.PenjualanID = sale.ID
		it.CreatedAt = now
		err = itemStmt.QueryRowContext(ctx, it.PenjualanID, it.ItemType, it.ItemID, it.NamaBarang, it.Kuantitas, it.HargaSatuan, it.CreatedAt).
			Scan(&it.ID)
		if err != nil {
			logger.Error(fmt.Sprintf("CreateSaleWithItems: failed to insert %s %d", it.ItemType, it.ItemID), err)
			return err
		}
	}

	return tx.Commit()
}

// priceLine locks the catalog row, checks the price the client saw and takes
// stock for barang. Name and price on the line are replaced by the catalog's.
func (r *postgresSaleRepository) priceLine(ctx context.Context, tx *sql.Tx, it *domain.SaleItem) error {
	table, ok := catalogTables[it.ItemType]
	if !ok {
		return fmt.Errorf("%w: unknown item type %q", ErrItemNotFound, it.ItemType)
	}

	var name string
	var price decimal.Decimal
	err := tx.QueryRowContext(ctx, `SELECT name, price FROM `+table+` WHERE id = $1 FOR UPDATE`, it.ItemID).Scan(&name, &price)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %d", ErrItemNotFound, it.ItemType, it.ItemID)
	}
	if err != nil {
		logger.Error(fmt.Sprintf("CreateSaleWithItems: failed to read %s %d", it.ItemType, it.ItemID), err)
		return err
	}
	if !it.HargaSatuan.IsZero() && !it.HargaSatuan.Equal(price) {
		return fmt.Errorf("%w: %s now costs %s", ErrPriceChanged, name, price.String())
	}
	it.NamaBarang = name
	it.HargaSatuan = price

	if it.ItemType != domain.ItemBarang {
		return nil
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE barang SET quantity = quantity - $1, updated_at = NOW() WHERE id = $2 AND quantity >= $1`,
		it.Kuantitas, it.ItemID)
	if err != nil {
		logger.Error(fmt.Sprintf("CreateSaleWithItems: failed to decrease stock of barang %d", it.ItemID), err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s (%d pcs requested)", ErrInsufficientStock, name, it.Kuantitas)
	}
	return nil
}

func (r *postgresSaleRepository) ListBetween(ctx context.Context, start, end time.Time) ([]domain.Sale, error) {
	query := `SELECT p.id, p.pelanggan_id, p.pelanggan_name, p.harga, p.kuantitas, p.created_at, p.updated_at,
                     i.id, i.item_type, i.item_id, i.nama_barang, i.kuantitas, i.harga_satuan, i.created_at
              FROM penjualan p
              LEFT JOIN penjualan_items i ON i.penjualan_id = p.id
              WHERE p.created_at >= $1 AND p.created_at < $2
              ORDER BY p.created_at DESC, p.id DESC, i.id ASC`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		logger.Error("ListBetween: query failed", err)
		return nil, err
	}
	defer rows.Close()

	sales := []domain.Sale{}
	index := map[rdomain.ID]int{}
	for rows.Next() {
		var s domain.Sale
		var (
			itemID, itemRef sql.NullInt64
			itemType, name  sql.NullString
			qty             sql.NullInt64
			price           decimal.NullDecimal
			itemCreated     sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.PelangganID, &s.PelangganName, &s.Harga, &s.Kuantitas, &s.CreatedAt, &s.UpdatedAt,
			&itemID, &itemType, &itemRef, &name, &qty, &price, &itemCreated); err != nil {
			logger.Error("ListBetween: scan failed", err)
			return nil, err
		}

		pos, seen := index[s.ID]
		if !seen {
			s.Items = []domain.SaleItem{}
			sales = append(sales, s)
			pos = len(sales) - 1
			index[s.ID] = pos
		}
		if !itemID.Valid {
			continue
		}
		sales[pos].Items = append(sales[pos].Items, domain.SaleItem{
			ID:          rdomain.ID(itemID.Int64),
			PenjualanID: s.ID,
			ItemType:    domain.ItemType(itemType.String),
			ItemID:      rdomain.ID(itemRef.Int64),
			NamaBarang:  name.String,
			Kuantitas:   int(qty.Int64),
			HargaSatuan: price.Decimal,
			CreatedAt:   itemCreated.Time,
		})
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListBetween: rows error", err)
		return nil, err
	}
	return sales, nil
}

func (r *postgresSaleRepository) Delete(ctx context.Context, id rdomain.ID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("Delete penjualan: failed to begin tx", err)
		return err
	}
	defer tx.Rollback()

	// Kembalikan stok barang sebelum penjualan dihapus
	_, err = tx.ExecContext(ctx, `UPDATE barang b SET quantity = b.quantity + i.kuantitas, updated_at = NOW()
        FROM penjualan_items i
        WHERE i.penjualan_id = $1 AND i.item_type = $2 AND i.item_id = b.id`, id, domain.ItemBarang)
	if err != nil {
		logger.Error(fmt.Sprintf("Delete penjualan %d: failed to restore stock", id), err)
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM penjualan_items WHERE penjualan_id = $1`, id); err != nil {
		logger.Error(fmt.Sprintf("Delete penjualan %d: failed to delete items", id), err)
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM penjualan WHERE id = $1`, id)
	if err != nil {
		logger.Error(fmt.Sprintf("Delete penjualan %d: failed", id), err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSaleNotFound
	}
	return tx.Commit()
}
