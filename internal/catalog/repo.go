package catalog

import "context"

// Repo defines persistence operations for the document type catalog.
type Repo interface {
	Create(ctx context.Context, entry DocumentType) error
	GetByID(ctx context.Context, companyID, typeID string) (DocumentType, error)
	GetByCode(ctx context.Context, companyID, code string) (DocumentType, error)
	ListByCompany(ctx context.Context, companyID string) ([]DocumentType, error)
}
