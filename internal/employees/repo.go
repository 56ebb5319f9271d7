package employees

import "context"

type Repo interface {
	Create(ctx context.Context, employee Employee) error
	GetByID(ctx context.Context, companyID, employeeID string) (Employee, error)
	ListByCompany(ctx context.Context, companyID string) ([]Employee, error)
}
