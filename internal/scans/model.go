package scans

import (
	"time"

	"compliance-backend/internal/resolution"
)

// ScanFile is one uploaded file inside a batch, recorded at intake.
type ScanFile struct {
	FileName   string `json:"fileName"`
	StorageKey string `json:"storageKey"`
	MIMEType   string `json:"mimeType"`
	SizeBytes  int64  `json:"sizeBytes"`
}

// FileResult is the per-file outcome of a processed batch. Order matches the
// upload order.
type FileResult struct {
	FileName   string                      `json:"fileName"`
	StorageKey string                      `json:"storageKey,omitempty"`
	Resolved   resolution.ResolvedDocument `json:"resolved"`
}

// ScanBatch tracks one classification run over a set of uploaded files.
type ScanBatch struct {
	ID         string `json:"id"`
	CompanyID  string `json:"companyId"`
	EmployeeID string `json:"employeeId"`
	Status     string `json:"status"`

	Files   []ScanFile   `json:"files"`
	Results []FileResult `json:"results,omitempty"`

	CreatedDocs int `json:"createdDocs"`
	UpdatedDocs int `json:"updatedDocs"`
	SkippedDocs int `json:"skippedDocs"`

	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
