package resolution

import "time"

// RawScanResult is the untrusted output of the external AI classification
// step for a single scanned file. Every field except FileName and Success is
// best-effort and may be absent or contradictory.
type RawScanResult struct {
	FileName         string         `json:"fileName"`
	EmployeeID       string         `json:"employeeId,omitempty"`
	DocumentTypeCode string         `json:"document_type_code,omitempty"`
	DocumentTypeName string         `json:"document_type_name,omitempty"`
	EmissionDate     string         `json:"emission_date,omitempty"`
	ExpirationDate   string         `json:"expiration_date,omitempty"`
	Signatures       *RawSignatures `json:"signatures,omitempty"`
	Success          bool           `json:"success"`
	Error            string         `json:"error,omitempty"`
}

// RawSignatures is the raw signature-detection payload. The vision provider
// has shipped two field names for the company signature over time;
// has_responsible_signature is the legacy alias.
type RawSignatures struct {
	Count          *int  `json:"signature_count,omitempty"`
	HasCompany     *bool `json:"has_company_signature,omitempty"`
	HasResponsible *bool `json:"has_responsible_signature,omitempty"`
	HasInstructor  *bool `json:"has_instructor_signature,omitempty"`
	HasEmployee    *bool `json:"has_employee_signature,omitempty"`
}

// ExistingDocument is one currently-stored document for an employee, as
// supplied by the persistence layer. Read-only input to update detection.
type ExistingDocument struct {
	ID             string
	TypeID         string
	ExpirationDate *time.Time
}

// SignatureScore is the canonical signature-completeness judgment.
type SignatureScore struct {
	Count       int    `json:"count"`
	Company     bool   `json:"company"`
	Instructor  bool   `json:"instructor"`
	Employee    bool   `json:"employee"`
	FullySigned bool   `json:"fullySigned"`
	Summary     string `json:"summary"`
}

// ResolvedDocument is the engine's per-file output, consumed by the
// persistence collaborator. Immutable once produced; one per input scan.
type ResolvedDocument struct {
	FileName           string         `json:"fileName"`
	EmployeeID         string         `json:"employeeId,omitempty"`
	MatchedTypeID      string         `json:"matchedTypeId,omitempty"`
	RawTypeCode        string         `json:"rawTypeCode,omitempty"`
	RawTypeName        string         `json:"rawTypeName,omitempty"`
	ExpirationDate     *time.Time     `json:"expirationDate,omitempty"`
	ExpirationComputed bool           `json:"expirationComputed"`
	HasValidity        bool           `json:"hasValidity"`
	IsUpdate           bool           `json:"isUpdate"`
	ExistingDocumentID string         `json:"existingDocumentId,omitempty"`
	Signatures         SignatureScore `json:"signatures"`
	Success            bool           `json:"success"`
	Error              string         `json:"error,omitempty"`
}
