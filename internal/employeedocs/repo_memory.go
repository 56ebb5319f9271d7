package employeedocs

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	docs map[string]EmployeeDocument

	// Now is injected by tests to pin the expiring-window reference date.
	Now func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		docs: make(map[string]EmployeeDocument),
		Now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepo) Create(ctx context.Context, doc EmployeeDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, docID string) (EmployeeDocument, error) {
	if err := ctx.Err(); err != nil {
		return EmployeeDocument{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[docID]
	if !ok {
		return EmployeeDocument{}, ErrNotFound
	}
	return doc, nil
}

func (r *MemoryRepo) ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []EmployeeDocument
	for _, doc := range r.docs {
		if doc.EmployeeID == employeeID {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) UpdateFromScan(ctx context.Context, doc EmployeeDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.docs[doc.ID]
	if !ok {
		return ErrNotFound
	}
	current.ExpirationDate = doc.ExpirationDate
	current.HasValidity = doc.HasValidity
	current.ExpirationComputed = doc.ExpirationComputed
	current.SignatureSummary = doc.SignatureSummary
	current.StorageKey = doc.StorageKey
	current.FileName = doc.FileName
	current.UpdatedAt = doc.UpdatedAt
	r.docs[doc.ID] = current
	return nil
}

func (r *MemoryRepo) ListExpiring(ctx context.Context, companyID string, days int) ([]EmployeeDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cutoff := r.Now().AddDate(0, 0, days)
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []EmployeeDocument
	for _, doc := range r.docs {
		if doc.CompanyID != companyID || doc.ExpirationDate == nil {
			continue
		}
		if !doc.ExpirationDate.After(cutoff) {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ExpirationDate.Before(*out[j].ExpirationDate)
	})
	return out, nil
}
