package employeedocs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"compliance-backend/internal/resolution"
	"compliance-backend/internal/shared/telemetry"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// ApplyItem pairs a resolved scan result with the object-store key of the
// uploaded file it came from.
type ApplyItem struct {
	Resolved   resolution.ResolvedDocument
	StorageKey string
}

// ApplyReport counts what ApplyResolved did with a batch.
type ApplyReport struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// ApplyResolved persists a batch of resolved scan results for one company.
// Items that failed classification or did not match a catalog type are
// skipped, never errors; a repo failure on one item does not stop the rest.
func (s *Service) ApplyResolved(ctx context.Context, companyID string, items []ApplyItem) (ApplyReport, error) {
	var report ApplyReport
	for _, item := range items {
		resolved := item.Resolved
		if !resolved.Success || resolved.MatchedTypeID == "" {
			report.Skipped++
			continue
		}

		now := time.Now().UTC()
		doc := EmployeeDocument{
			CompanyID:          companyID,
			EmployeeID:         resolved.EmployeeID,
			TypeID:             resolved.MatchedTypeID,
			ExpirationDate:     resolved.ExpirationDate,
			HasValidity:        resolved.HasValidity,
			ExpirationComputed: resolved.ExpirationComputed,
			SignatureSummary:   resolved.Signatures.Summary,
			StorageKey:         item.StorageKey,
			FileName:           resolved.FileName,
			UpdatedAt:          now,
		}

		var err error
		if resolved.IsUpdate && resolved.ExistingDocumentID != "" {
			doc.ID = resolved.ExistingDocumentID
			err = s.Repo.UpdateFromScan(ctx, doc)
			if err == nil {
				report.Updated++
			}
		} else {
			doc.ID = uuid.NewString()
			doc.CreatedAt = now
			err = s.Repo.Create(ctx, doc)
			if err == nil {
				report.Created++
			}
		}
		if err != nil {
			report.Skipped++
			telemetry.Error("employeedocs.apply_failed", map[string]any{
				"company_id":  companyID,
				"employee_id": resolved.EmployeeID,
				"file_name":   resolved.FileName,
				"error":       err.Error(),
			})
		}
	}
	return report, nil
}

// ExistingForEmployee loads an employee's documents in the shape the
// resolution engine's update detector expects.
func (s *Service) ExistingForEmployee(ctx context.Context, employeeID string) ([]resolution.ExistingDocument, error) {
	docs, err := s.Repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]resolution.ExistingDocument, 0, len(docs))
	for _, doc := range docs {
		out = append(out, resolution.ExistingDocument{
			ID:             doc.ID,
			TypeID:         doc.TypeID,
			ExpirationDate: doc.ExpirationDate,
		})
	}
	return out, nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeDocument, error) {
	if employeeID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByEmployee(ctx, employeeID)
}

func (s *Service) ListExpiring(ctx context.Context, companyID string, days int) ([]EmployeeDocument, error) {
	if companyID == "" || days < 0 {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListExpiring(ctx, companyID, days)
}
