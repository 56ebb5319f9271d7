package employeedocs

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

const docColumns = `id, company_id, employee_id, type_id, expiration_date,
has_validity, expiration_computed, signature_summary, storage_key, file_name,
created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, doc EmployeeDocument) error {
	const query = `
INSERT INTO employee_documents
  (id, company_id, employee_id, type_id, expiration_date, has_validity,
   expiration_computed, signature_summary, storage_key, file_name,
   created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.CompanyID,
		doc.EmployeeID,
		doc.TypeID,
		nullableTime(doc.ExpirationDate),
		doc.HasValidity,
		doc.ExpirationComputed,
		nullableString(doc.SignatureSummary),
		nullableString(doc.StorageKey),
		doc.FileName,
		doc.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, docID string) (EmployeeDocument, error) {
	query := `
SELECT ` + docColumns + `
FROM employee_documents
WHERE id = $1
LIMIT 1`
	doc, err := scanDoc(r.DB.QueryRowContext(ctx, query, docID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EmployeeDocument{}, ErrNotFound
		}
		return EmployeeDocument{}, err
	}
	return doc, nil
}

func (r *PGRepo) ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeDocument, error) {
	query := `
SELECT ` + docColumns + `
FROM employee_documents
WHERE employee_id = $1
ORDER BY created_at ASC`
	return r.queryDocs(ctx, query, employeeID)
}

func (r *PGRepo) UpdateFromScan(ctx context.Context, doc EmployeeDocument) error {
	const query = `
UPDATE employee_documents SET
  expiration_date = $2,
  has_validity = $3,
  expiration_computed = $4,
  signature_summary = $5,
  storage_key = $6,
  file_name = $7,
  updated_at = $8
WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		nullableTime(doc.ExpirationDate),
		doc.HasValidity,
		doc.ExpirationComputed,
		nullableString(doc.SignatureSummary),
		nullableString(doc.StorageKey),
		doc.FileName,
		doc.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ListExpiring(ctx context.Context, companyID string, days int) ([]EmployeeDocument, error) {
	query := `
SELECT ` + docColumns + `
FROM employee_documents
WHERE company_id = $1
  AND expiration_date IS NOT NULL
  AND expiration_date <= now() + make_interval(days => $2)
ORDER BY expiration_date ASC`
	return r.queryDocs(ctx, query, companyID, days)
}

func (r *PGRepo) queryDocs(ctx context.Context, query string, args ...any) ([]EmployeeDocument, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EmployeeDocument
	for rows.Next() {
		doc, err := scanDoc(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDoc(row rowScanner) (EmployeeDocument, error) {
	var doc EmployeeDocument
	var expiration sql.NullTime
	var summary sql.NullString
	var storageKey sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&doc.ID,
		&doc.CompanyID,
		&doc.EmployeeID,
		&doc.TypeID,
		&expiration,
		&doc.HasValidity,
		&doc.ExpirationComputed,
		&summary,
		&storageKey,
		&doc.FileName,
		&doc.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return EmployeeDocument{}, err
	}
	if expiration.Valid {
		t := expiration.Time.UTC()
		doc.ExpirationDate = &t
	}
	if summary.Valid {
		doc.SignatureSummary = summary.String
	}
	if storageKey.Valid {
		doc.StorageKey = storageKey.String
	}
	if updatedAt.Valid {
		doc.UpdatedAt = updatedAt.Time
	} else {
		doc.UpdatedAt = doc.CreatedAt
	}
	return doc, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}
