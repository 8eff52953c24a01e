package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"caixahub/internal/domain/company"
)

// CompanyRepository implements the company.Repository interface for PostgreSQL
type CompanyRepository struct {
	db *DB
}

// NewCompanyRepository creates a new PostgreSQL company repository
func NewCompanyRepository(db *DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, params company.CreateParams) (*company.Company, error) {
	query := `
		INSERT INTO companies (owner_id, cnpj, legal_name, trade_name, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, owner_id, cnpj, legal_name, trade_name, phone, email, created_at, updated_at
	`

	var c company.Company
	var tradeName, phone, email sql.NullString
	err := r.db.QueryRowContext(
		ctx, query,
		params.OwnerID, params.CNPJ, params.LegalName,
		nullString(params.TradeName), nullString(params.Phone), nullString(params.Email),
	).Scan(
		&c.ID, &c.OwnerID, &c.CNPJ, &c.LegalName, &tradeName, &phone, &email,
		&c.CreatedAt, &c.UpdatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return nil, company.ErrDuplicateCNPJ
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	c.TradeName = tradeName.String
	c.Phone = phone.String
	c.Email = email.String

	return &c, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*company.Company, error) {
	query := `
		SELECT id, owner_id, cnpj, legal_name, trade_name, phone, email, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *CompanyRepository) GetByCNPJ(ctx context.Context, cnpj string) (*company.Company, error) {
	query := `
		SELECT id, owner_id, cnpj, legal_name, trade_name, phone, email, created_at, updated_at
		FROM companies
		WHERE cnpj = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, cnpj))
}

func (r *CompanyRepository) ListByOwnerID(ctx context.Context, ownerID int64) ([]*company.Company, error) {
	query := `
		SELECT id, owner_id, cnpj, legal_name, trade_name, phone, email, created_at, updated_at
		FROM companies
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []*company.Company
	for rows.Next() {
		var c company.Company
		var tradeName, phone, email sql.NullString
		if err := rows.Scan(
			&c.ID, &c.OwnerID, &c.CNPJ, &c.LegalName, &tradeName, &phone, &email,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		c.TradeName = tradeName.String
		c.Phone = phone.String
		c.Email = email.String
		companies = append(companies, &c)
	}

	return companies, rows.Err()
}

func (r *CompanyRepository) Update(ctx context.Context, id int64, params company.UpdateParams) (*company.Company, error) {
	query := `
		UPDATE companies
		SET legal_name = COALESCE($2, legal_name),
		    trade_name = COALESCE($3, trade_name),
		    phone = COALESCE($4, phone),
		    email = COALESCE($5, email),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, owner_id, cnpj, legal_name, trade_name, phone, email, created_at, updated_at
	`

	return r.scanOne(r.db.QueryRowContext(
		ctx, query, id,
		params.LegalName, params.TradeName, params.Phone, params.Email,
	))
}

func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}

func (r *CompanyRepository) scanOne(row *tracedRow) (*company.Company, error) {
	var c company.Company
	var tradeName, phone, email sql.NullString
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.CNPJ, &c.LegalName, &tradeName, &phone, &email,
		&c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, company.ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	c.TradeName = tradeName.String
	c.Phone = phone.String
	c.Email = email.String

	return &c, nil
}
