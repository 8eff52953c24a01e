package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"caixahub/internal/domain/bill"
)

// BillRepository implements the bill.Repository interface for PostgreSQL
type BillRepository struct {
	db *DB
}

// NewBillRepository creates a new PostgreSQL bill repository
func NewBillRepository(db *DB) *BillRepository {
	return &BillRepository{db: db}
}

const billColumns = `id, company_id, amount, due_date, status, description, biller_name, category, barcode, digitable_line, payment_date, created_at, updated_at`

func (r *BillRepository) Create(ctx context.Context, params bill.CreateParams) (*bill.Bill, error) {
	query := `
		INSERT INTO bills (id, company_id, amount, due_date, status, description, biller_name, category, barcode, digitable_line)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + billColumns

	return scanBill(r.db.QueryRowContext(
		ctx, query,
		params.ID, params.CompanyID, params.Amount, params.DueDate, params.Status,
		nullString(params.Description), nullString(params.BillerName),
		params.Category, params.Barcode, params.DigitableLine,
	))
}

func (r *BillRepository) GetByID(ctx context.Context, id string) (*bill.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	return scanBill(r.db.QueryRowContext(ctx, query, id))
}

func (r *BillRepository) ListByCompanyID(ctx context.Context, companyID int64) ([]*bill.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE company_id = $1
		ORDER BY due_date ASC
	`
	return r.list(ctx, query, companyID)
}

func (r *BillRepository) ListDueBetween(ctx context.Context, companyID int64, from, to time.Time) ([]*bill.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE company_id = $1 AND status = 'OPEN' AND due_date >= $2 AND due_date <= $3
		ORDER BY due_date ASC
	`
	return r.list(ctx, query, companyID, from, to)
}

func (r *BillRepository) MarkPaid(ctx context.Context, id string, paymentDate time.Time) (*bill.Bill, error) {
	query := `
		UPDATE bills
		SET status = 'PAID', payment_date = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + billColumns

	return scanBill(r.db.QueryRowContext(ctx, query, id, paymentDate))
}

func (r *BillRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return bill.ErrBillNotFound
	}

	return nil
}

func (r *BillRepository) list(ctx context.Context, query string, args ...any) ([]*bill.Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*bill.Bill
	for rows.Next() {
		var b bill.Bill
		var description, billerName, category, barcode, digitableLine sql.NullString
		var paymentDate sql.NullTime
		if err := rows.Scan(
			&b.ID, &b.CompanyID, &b.Amount, &b.DueDate, &b.Status,
			&description, &billerName, &category, &barcode, &digitableLine,
			&paymentDate, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		b.Description = description.String
		b.BillerName = billerName.String
		if category.Valid {
			b.Category = &category.String
		}
		if barcode.Valid {
			b.Barcode = &barcode.String
		}
		if digitableLine.Valid {
			b.DigitableLine = &digitableLine.String
		}
		if paymentDate.Valid {
			b.PaymentDate = &paymentDate.Time
		}
		bills = append(bills, &b)
	}

	return bills, rows.Err()
}

func scanBill(row *tracedRow) (*bill.Bill, error) {
	var b bill.Bill
	var description, billerName, category, barcode, digitableLine sql.NullString
	var paymentDate sql.NullTime

	err := row.Scan(
		&b.ID, &b.CompanyID, &b.Amount, &b.DueDate, &b.Status,
		&description, &billerName, &category, &barcode, &digitableLine,
		&paymentDate, &b.CreatedAt, &b.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, bill.ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan bill: %w", err)
	}

	b.Description = description.String
	b.BillerName = billerName.String
	if category.Valid {
		b.Category = &category.String
	}
	if barcode.Valid {
		b.Barcode = &barcode.String
	}
	if digitableLine.Valid {
		b.DigitableLine = &digitableLine.String
	}
	if paymentDate.Valid {
		b.PaymentDate = &paymentDate.Time
	}

	return &b, nil
}
