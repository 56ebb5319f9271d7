package employeedocs

import "context"

type Repo interface {
	Create(ctx context.Context, doc EmployeeDocument) error
	GetByID(ctx context.Context, docID string) (EmployeeDocument, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeDocument, error)
	// UpdateFromScan replaces the scan-derived fields of an existing record:
	// expiration, signature summary, storage key and file name.
	UpdateFromScan(ctx context.Context, doc EmployeeDocument) error
	// ListExpiring returns the company's documents whose expiration falls
	// within the next `days` days, already-expired documents included.
	ListExpiring(ctx context.Context, companyID string, days int) ([]EmployeeDocument, error)
}
