package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"caixahub/internal/domain/transaction"
)

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, account_id, company_id, amount, description, category, transaction_date, type, status, manipulated, created_at, updated_at`

func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (id, account_id, company_id, amount, description, category, transaction_date, type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + transactionColumns

	status := params.Status
	if status == "" {
		status = "POSTED"
	}

	return scanTransaction(r.db.QueryRowContext(
		ctx, query,
		params.ID, params.AccountID, params.CompanyID, params.Amount,
		params.Description, params.Category, params.TransactionDate, params.Type, status,
	))
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == transaction.ErrTransactionNotFound {
		return nil, transaction.ErrTransactionNotFound
	}
	return tx, err
}

func (r *TransactionRepository) ListByCompanyID(ctx context.Context, companyID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	var conditions []string
	var args []any

	conditions = append(conditions, fmt.Sprintf("company_id = $%d", len(args)+1))
	args = append(args, companyID)

	if filter.AccountID != "" {
		conditions = append(conditions, fmt.Sprintf("account_id = $%d", len(args)+1))
		args = append(args, filter.AccountID)
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, filter.Category)
	}
	if !filter.From.IsZero() {
		conditions = append(conditions, fmt.Sprintf("transaction_date >= $%d", len(args)+1))
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		conditions = append(conditions, fmt.Sprintf("transaction_date <= $%d", len(args)+1))
		args = append(args, filter.To)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(conditions, " AND ") +
		fmt.Sprintf(" ORDER BY transaction_date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		var tx transaction.Transaction
		var category sql.NullString
		if err := rows.Scan(
			&tx.ID, &tx.AccountID, &tx.CompanyID, &tx.Amount, &tx.Description,
			&category, &tx.TransactionDate, &tx.Type, &tx.Status, &tx.Manipulated,
			&tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if category.Valid {
			tx.Category = &category.String
		}
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}

func (r *TransactionRepository) CountByCompanyIDSince(ctx context.Context, companyID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE company_id = $1 AND created_at >= $2`,
		companyID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// Update updates a transaction. Setting a category marks it as
// user-manipulated so provider syncs won't overwrite it.
func (r *TransactionRepository) Update(ctx context.Context, id string, params transaction.UpdateParams) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions
		SET description = COALESCE($2, description),
		    category = COALESCE($3, category),
		    status = COALESCE($4, status),
		    manipulated = manipulated OR $3 IS NOT NULL,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + transactionColumns

	return scanTransaction(r.db.QueryRowContext(ctx, query, id, params.Description, params.Category, params.Status))
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

func scanTransaction(row *tracedRow) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var category sql.NullString

	err := row.Scan(
		&tx.ID, &tx.AccountID, &tx.CompanyID, &tx.Amount, &tx.Description,
		&category, &tx.TransactionDate, &tx.Type, &tx.Status, &tx.Manipulated,
		&tx.CreatedAt, &tx.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	if category.Valid {
		tx.Category = &category.String
	}

	return &tx, nil
}
