package employees

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Create(ctx context.Context, companyID, name, role string) (Employee, error) {
	name = strings.TrimSpace(name)
	if companyID == "" || name == "" {
		return Employee{}, ErrInvalidInput
	}
	employee := Employee{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Name:      name,
		Role:      strings.TrimSpace(role),
		CreatedAt: time.Now().UTC(),
	}
	employee.UpdatedAt = employee.CreatedAt
	if err := s.Repo.Create(ctx, employee); err != nil {
		return Employee{}, err
	}
	return employee, nil
}

func (s *Service) Get(ctx context.Context, companyID, employeeID string) (Employee, error) {
	if companyID == "" || employeeID == "" {
		return Employee{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, companyID, employeeID)
}

func (s *Service) List(ctx context.Context, companyID string) ([]Employee, error) {
	if companyID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByCompany(ctx, companyID)
}
