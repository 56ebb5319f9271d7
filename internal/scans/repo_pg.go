package scans

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

const batchColumns = `id, company_id, employee_id, status, files, results,
created_docs, updated_docs, skipped_docs, error_code, error_message,
created_at, started_at, completed_at`

func (r *PGRepo) Create(ctx context.Context, batch ScanBatch) error {
	files, err := json.Marshal(batch.Files)
	if err != nil {
		return fmt.Errorf("marshal batch files: %w", err)
	}
	const query = `
INSERT INTO scan_batches
  (id, company_id, employee_id, status, files, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.DB.ExecContext(ctx, query,
		batch.ID,
		batch.CompanyID,
		batch.EmployeeID,
		batch.Status,
		files,
		batch.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, batchID string) (ScanBatch, error) {
	query := `
SELECT ` + batchColumns + `
FROM scan_batches
WHERE id = $1
LIMIT 1`
	batch, err := scanBatchRow(r.DB.QueryRowContext(ctx, query, batchID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ScanBatch{}, ErrNotFound
		}
		return ScanBatch{}, err
	}
	return batch, nil
}

func (r *PGRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]ScanBatch, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
SELECT ` + batchColumns + `
FROM scan_batches
WHERE company_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScanBatch
	for rows.Next() {
		batch, err := scanBatchRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, batch)
	}
	return out, rows.Err()
}

func (r *PGRepo) SetProcessing(ctx context.Context, batchID string, startedAt time.Time) error {
	const query = `
UPDATE scan_batches SET status = $2, started_at = $3
WHERE id = $1`
	return r.exec(ctx, query, batchID, StatusProcessing, startedAt)
}

func (r *PGRepo) SetCompleted(ctx context.Context, batchID string, results []FileResult, created, updated, skipped int, completedAt time.Time) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal batch results: %w", err)
	}
	const query = `
UPDATE scan_batches SET
  status = $2,
  results = $3,
  created_docs = $4,
  updated_docs = $5,
  skipped_docs = $6,
  completed_at = $7
WHERE id = $1`
	return r.exec(ctx, query, batchID, StatusCompleted, payload, created, updated, skipped, completedAt)
}

func (r *PGRepo) SetFailed(ctx context.Context, batchID, code, message string, completedAt time.Time) error {
	const query = `
UPDATE scan_batches SET
  status = $2,
  error_code = $3,
  error_message = $4,
  completed_at = $5
WHERE id = $1`
	return r.exec(ctx, query, batchID, StatusFailed, code, message, completedAt)
}

func (r *PGRepo) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatchRow(row rowScanner) (ScanBatch, error) {
	var batch ScanBatch
	var files []byte
	var results []byte
	var errorCode sql.NullString
	var errorMessage sql.NullString
	var startedAt sql.NullTime
	var completedAt sql.NullTime
	err := row.Scan(
		&batch.ID,
		&batch.CompanyID,
		&batch.EmployeeID,
		&batch.Status,
		&files,
		&results,
		&batch.CreatedDocs,
		&batch.UpdatedDocs,
		&batch.SkippedDocs,
		&errorCode,
		&errorMessage,
		&batch.CreatedAt,
		&startedAt,
		&completedAt,
	)
	if err != nil {
		return ScanBatch{}, err
	}
	if len(files) > 0 {
		if err := json.Unmarshal(files, &batch.Files); err != nil {
			return ScanBatch{}, fmt.Errorf("unmarshal batch files: %w", err)
		}
	}
	if len(results) > 0 {
		if err := json.Unmarshal(results, &batch.Results); err != nil {
			return ScanBatch{}, fmt.Errorf("unmarshal batch results: %w", err)
		}
	}
	if errorCode.Valid {
		batch.ErrorCode = errorCode.String
	}
	if errorMessage.Valid {
		batch.ErrorMessage = errorMessage.String
	}
	if startedAt.Valid {
		t := startedAt.Time.UTC()
		batch.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		batch.CompletedAt = &t
	}
	return batch, nil
}
