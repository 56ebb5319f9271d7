package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, keyed by company.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]DocumentType // companyID -> entries
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]DocumentType)}
}

// Create stores a new document type for a company.
func (r *MemoryRepo) Create(ctx context.Context, entry DocumentType) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data[entry.CompanyID] {
		if existing.Code == entry.Code {
			return ErrDuplicateCode
		}
	}
	r.data[entry.CompanyID] = append(r.data[entry.CompanyID], entry)
	return nil
}

// GetByID returns a document type by id within a company.
func (r *MemoryRepo) GetByID(ctx context.Context, companyID, typeID string) (DocumentType, error) {
	if err := ctx.Err(); err != nil {
		return DocumentType{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.data[companyID] {
		if entry.ID == typeID {
			return entry, nil
		}
	}
	return DocumentType{}, ErrNotFound
}

// GetByCode returns a document type by code within a company.
func (r *MemoryRepo) GetByCode(ctx context.Context, companyID, code string) (DocumentType, error) {
	if err := ctx.Err(); err != nil {
		return DocumentType{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.data[companyID] {
		if entry.Code == code {
			return entry, nil
		}
	}
	return DocumentType{}, ErrNotFound
}

// ListByCompany returns all document types for a company ordered by code.
func (r *MemoryRepo) ListByCompany(ctx context.Context, companyID string) ([]DocumentType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	entries := append([]DocumentType(nil), r.data[companyID]...)
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries, nil
}

var _ Repo = (*MemoryRepo)(nil)
