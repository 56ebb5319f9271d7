package scans

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	batches map[string]ScanBatch
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{batches: make(map[string]ScanBatch)}
}

func (r *MemoryRepo) Create(ctx context.Context, batch ScanBatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[batch.ID] = batch
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, batchID string) (ScanBatch, error) {
	if err := ctx.Err(); err != nil {
		return ScanBatch{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	batch, ok := r.batches[batchID]
	if !ok {
		return ScanBatch{}, ErrNotFound
	}
	return batch, nil
}

func (r *MemoryRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]ScanBatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ScanBatch
	for _, batch := range r.batches {
		if batch.CompanyID == companyID {
			out = append(out, batch)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) SetProcessing(ctx context.Context, batchID string, startedAt time.Time) error {
	return r.mutate(ctx, batchID, func(batch *ScanBatch) {
		batch.Status = StatusProcessing
		batch.StartedAt = &startedAt
	})
}

func (r *MemoryRepo) SetCompleted(ctx context.Context, batchID string, results []FileResult, created, updated, skipped int, completedAt time.Time) error {
	return r.mutate(ctx, batchID, func(batch *ScanBatch) {
		batch.Status = StatusCompleted
		batch.Results = results
		batch.CreatedDocs = created
		batch.UpdatedDocs = updated
		batch.SkippedDocs = skipped
		batch.CompletedAt = &completedAt
	})
}

func (r *MemoryRepo) SetFailed(ctx context.Context, batchID, code, message string, completedAt time.Time) error {
	return r.mutate(ctx, batchID, func(batch *ScanBatch) {
		batch.Status = StatusFailed
		batch.ErrorCode = code
		batch.ErrorMessage = message
		batch.CompletedAt = &completedAt
	})
}

func (r *MemoryRepo) mutate(ctx context.Context, batchID string, apply func(*ScanBatch)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	batch, ok := r.batches[batchID]
	if !ok {
		return ErrNotFound
	}
	apply(&batch)
	r.batches[batchID] = batch
	return nil
}
