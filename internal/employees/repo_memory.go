package employees

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu        sync.RWMutex
	byCompany map[string][]Employee
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byCompany: make(map[string][]Employee)}
}

func (r *MemoryRepo) Create(ctx context.Context, employee Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCompany[employee.CompanyID] = append(r.byCompany[employee.CompanyID], employee)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, companyID, employeeID string) (Employee, error) {
	if err := ctx.Err(); err != nil {
		return Employee{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, employee := range r.byCompany[companyID] {
		if employee.ID == employeeID {
			return employee, nil
		}
	}
	return Employee{}, ErrNotFound
}

func (r *MemoryRepo) ListByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Employee, len(r.byCompany[companyID]))
	copy(out, r.byCompany[companyID])
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
