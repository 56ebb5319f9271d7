package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document type.
func (r *PGRepo) Create(ctx context.Context, entry DocumentType) error {
	const query = `
INSERT INTO document_types (id, company_id, code, name, default_validity_years, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	var years sql.NullInt32
	if entry.DefaultValidityYears != nil {
		years = sql.NullInt32{Int32: int32(*entry.DefaultValidityYears), Valid: true}
	}

	_, err := r.DB.ExecContext(ctx, query,
		entry.ID,
		entry.CompanyID,
		entry.Code,
		entry.Name,
		years,
		entry.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateCode
	}
	return err
}

// GetByID fetches a document type by id within a company.
func (r *PGRepo) GetByID(ctx context.Context, companyID, typeID string) (DocumentType, error) {
	const query = `
SELECT id, company_id, code, name, default_validity_years, created_at
FROM document_types
WHERE company_id = $1 AND id = $2
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, companyID, typeID))
}

// GetByCode fetches a document type by code within a company.
func (r *PGRepo) GetByCode(ctx context.Context, companyID, code string) (DocumentType, error) {
	const query = `
SELECT id, company_id, code, name, default_validity_years, created_at
FROM document_types
WHERE company_id = $1 AND code = $2
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, companyID, code))
}

// ListByCompany lists document types for a company ordered by code.
func (r *PGRepo) ListByCompany(ctx context.Context, companyID string) ([]DocumentType, error) {
	const query = `
SELECT id, company_id, code, name, default_validity_years, created_at
FROM document_types
WHERE company_id = $1
ORDER BY code`

	rows, err := r.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DocumentType
	for rows.Next() {
		var entry DocumentType
		var years sql.NullInt32
		if err := rows.Scan(&entry.ID, &entry.CompanyID, &entry.Code, &entry.Name, &years, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if years.Valid {
			v := int(years.Int32)
			entry.DefaultValidityYears = &v
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *PGRepo) scanOne(row *sql.Row) (DocumentType, error) {
	var entry DocumentType
	var years sql.NullInt32
	err := row.Scan(&entry.ID, &entry.CompanyID, &entry.Code, &entry.Name, &years, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DocumentType{}, ErrNotFound
		}
		return DocumentType{}, err
	}
	if years.Valid {
		v := int(years.Int32)
		entry.DefaultValidityYears = &v
	}
	return entry, nil
}

var _ Repo = (*PGRepo)(nil)
