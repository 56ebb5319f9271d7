package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"compliance-backend/internal/shared/telemetry"
)

// Service contains business logic for the document type catalog.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create adds a document type after validating code and name.
func (s *Service) Create(ctx context.Context, companyID, code, name string, validityYears *int) (DocumentType, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)
	if companyID == "" || code == "" || name == "" {
		return DocumentType{}, ErrInvalidInput
	}
	if validityYears != nil && *validityYears <= 0 {
		return DocumentType{}, ErrInvalidInput
	}

	entry := DocumentType{
		ID:                   uuid.NewString(),
		CompanyID:            companyID,
		Code:                 code,
		Name:                 name,
		DefaultValidityYears: validityYears,
		CreatedAt:            time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		return DocumentType{}, err
	}
	return entry, nil
}

// Get returns one document type.
func (s *Service) Get(ctx context.Context, companyID, typeID string) (DocumentType, error) {
	if companyID == "" || typeID == "" {
		return DocumentType{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, companyID, typeID)
}

// List returns the company's catalog.
func (s *Service) List(ctx context.Context, companyID string) ([]DocumentType, error) {
	if companyID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByCompany(ctx, companyID)
}

// AutoCreate registers a catalog entry for an unmatched raw AI code. The
// decision belongs here, not in the resolution engine: sentinel codes the AI
// uses for "could not classify" never create entries. The new entry carries
// no default validity; an admin sets one later.
func (s *Service) AutoCreate(ctx context.Context, companyID, rawCode, rawName string) (DocumentType, bool, error) {
	code := normalizeAutoCode(rawCode)
	if companyID == "" || code == "" || isUnknownSentinel(code) {
		return DocumentType{}, false, nil
	}

	if existing, err := s.Repo.GetByCode(ctx, companyID, code); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return DocumentType{}, false, err
	}

	name := strings.TrimSpace(rawName)
	if name == "" {
		name = code
	}
	entry := DocumentType{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Code:      code,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			return s.lookupAfterRace(ctx, companyID, code)
		}
		return DocumentType{}, false, err
	}

	telemetry.Info("catalog.auto_created", map[string]any{
		"company_id": companyID,
		"type_id":    entry.ID,
		"code":       code,
	})
	return entry, true, nil
}

func (s *Service) lookupAfterRace(ctx context.Context, companyID, code string) (DocumentType, bool, error) {
	existing, err := s.Repo.GetByCode(ctx, companyID, code)
	if err != nil {
		return DocumentType{}, false, err
	}
	return existing, false, nil
}

func normalizeAutoCode(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(raw)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isUnknownSentinel(code string) bool {
	switch code {
	case "OUTRO", "OUTROS", "DESCONHECIDO", "UNKNOWN", "NA":
		return true
	default:
		return false
	}
}
