package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/retailpulse/backend/internal/domain"
)

type posRepository struct {
	db *DB
}

func NewPosRepository(db *DB) *posRepository {
	return &posRepository{db: db}
}

func (r *posRepository) GetSaleByReceipt(ctx context.Context, deviceID, receiptNo string) (*domain.PosSale, error) {
	query := `
		SELECT id, pos_device_id, receipt_no, transaction_type, total_amount,
		       currency, status, sync_ref, created_at
		FROM pos_sales
		WHERE pos_device_id = $1 AND receipt_no = $2
	`

	var sale domain.PosSale
	if err := sqlx.GetContext(ctx, r.db, &sale, query, deviceID, receiptNo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pos sale device=%s receipt=%s: %w", deviceID, receiptNo, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pos sale: %w", err)
	}
	return &sale, nil
}

// InsertPosSale writes the receipt header, its items and its payments in
// one transaction and fills in the generated sale ID.
func (r *posRepository) InsertPosSale(ctx context.Context, sale *domain.PosSale) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO pos_sales (pos_device_id, receipt_no, transaction_type,
			                       total_amount, currency, status, sync_ref, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`, sale.DeviceID, sale.ReceiptNo, sale.TransactionType,
			sale.TotalAmount, sale.Currency, sale.Status, sale.SyncRef, sale.CreatedAt,
		).Scan(&sale.ID)
		if err != nil {
			return fmt.Errorf("failed to insert pos sale: %w", err)
		}

		for i := range sale.Items {
			item := &sale.Items[i]
			item.PosSaleID = sale.ID
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO pos_sale_items (pos_sale_id, product_sku, quantity, unit_price, vat_rate)
				VALUES ($1, $2, $3, $4, $5)
			`, item.PosSaleID, item.ProductSKU, item.Quantity, item.UnitPrice, item.VATRate); err != nil {
				return fmt.Errorf("failed to insert pos sale item: %w", err)
			}
		}

		for i := range sale.Payments {
			payment := &sale.Payments[i]
			payment.PosSaleID = sale.ID
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO pos_payments (pos_sale_id, payment_method, amount)
				VALUES ($1, $2, $3)
			`, payment.PosSaleID, payment.PaymentMethod, payment.Amount); err != nil {
				return fmt.Errorf("failed to insert pos payment: %w", err)
			}
		}

		return nil
	})
}

func (r *posRepository) InsertZReport(ctx context.Context, report *domain.PosZReport) (int64, error) {
	query := `
		INSERT INTO pos_z_reports (pos_device_id, z_no, date, total_sales,
		                           total_returns, total_cash, total_credit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		report.DeviceID, report.ZNo, report.Date, report.TotalSales,
		report.TotalReturns, report.TotalCash, report.TotalCredit,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert z-report: %w", err)
	}
	return id, nil
}
