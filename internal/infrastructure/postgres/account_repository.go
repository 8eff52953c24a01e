package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"caixahub/internal/domain/account"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, params account.CreateParams) (*account.Account, error) {
	query := `
		INSERT INTO accounts (id, company_id, name, bank_name, account_type, subtype, currency, balance, connected)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
		RETURNING id, company_id, name, bank_name, account_type, subtype, currency, balance, connected, created_at, updated_at
	`

	var acc account.Account
	var subtype, bankName sql.NullString

	err := r.db.QueryRowContext(
		ctx, query,
		params.ID, params.CompanyID, params.Name, nullString(params.BankName),
		params.AccountType, nullString(params.Subtype), params.Currency, params.Balance,
	).Scan(
		&acc.ID, &acc.CompanyID, &acc.Name, &bankName,
		&acc.AccountType, &subtype, &acc.Currency, &acc.Balance, &acc.Connected,
		&acc.CreatedAt, &acc.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	acc.BankName = bankName.String
	acc.Subtype = subtype.String

	return &acc, nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	query := `
		SELECT id, company_id, name, bank_name, account_type, subtype, currency, balance, connected, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var acc account.Account
	var subtype, bankName sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&acc.ID, &acc.CompanyID, &acc.Name, &bankName,
		&acc.AccountType, &subtype, &acc.Currency, &acc.Balance, &acc.Connected,
		&acc.CreatedAt, &acc.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	acc.BankName = bankName.String
	acc.Subtype = subtype.String

	return &acc, nil
}

// ListByCompanyID retrieves all accounts for a specific company
func (r *AccountRepository) ListByCompanyID(ctx context.Context, companyID int64) ([]*account.Account, error) {
	query := `
		SELECT id, company_id, name, bank_name, account_type, subtype, currency, balance, connected, created_at, updated_at
		FROM accounts
		WHERE company_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		var acc account.Account
		var subtype, bankName sql.NullString
		if err := rows.Scan(
			&acc.ID, &acc.CompanyID, &acc.Name, &bankName,
			&acc.AccountType, &subtype, &acc.Currency, &acc.Balance, &acc.Connected,
			&acc.CreatedAt, &acc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		acc.BankName = bankName.String
		acc.Subtype = subtype.String
		accounts = append(accounts, &acc)
	}

	return accounts, rows.Err()
}

// CountConnectedByCompanyID counts the actively connected accounts of a company
func (r *AccountRepository) CountConnectedByCompanyID(ctx context.Context, companyID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE company_id = $1 AND connected = true`,
		companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count connected accounts: %w", err)
	}
	return count, nil
}

// Update updates an account's mutable fields
func (r *AccountRepository) Update(ctx context.Context, id string, params account.UpdateParams) (*account.Account, error) {
	query := `
		UPDATE accounts
		SET name = COALESCE($2, name),
		    balance = COALESCE($3, balance),
		    connected = COALESCE($4, connected),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, company_id, name, bank_name, account_type, subtype, currency, balance, connected, created_at, updated_at
	`

	var acc account.Account
	var subtype, bankName sql.NullString

	err := r.db.QueryRowContext(ctx, query, id, params.Name, params.Balance, params.Connected).Scan(
		&acc.ID, &acc.CompanyID, &acc.Name, &bankName,
		&acc.AccountType, &subtype, &acc.Currency, &acc.Balance, &acc.Connected,
		&acc.CreatedAt, &acc.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	acc.BankName = bankName.String
	acc.Subtype = subtype.String

	return &acc, nil
}

// Delete removes an account
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
