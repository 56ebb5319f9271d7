package scans

import (
	"context"
	"time"
)

type Repo interface {
	Create(ctx context.Context, batch ScanBatch) error
	GetByID(ctx context.Context, batchID string) (ScanBatch, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]ScanBatch, error)
	SetProcessing(ctx context.Context, batchID string, startedAt time.Time) error
	SetCompleted(ctx context.Context, batchID string, results []FileResult, created, updated, skipped int, completedAt time.Time) error
	SetFailed(ctx context.Context, batchID, code, message string, completedAt time.Time) error
}
