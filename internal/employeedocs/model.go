package employeedocs

import "time"

// EmployeeDocument is one compliance document held by an employee. A nil
// ExpirationDate means the document does not expire (identity documents) or
// the expiration could not be determined.
type EmployeeDocument struct {
	ID                 string     `json:"id"`
	CompanyID          string     `json:"companyId"`
	EmployeeID         string     `json:"employeeId"`
	TypeID             string     `json:"typeId"`
	ExpirationDate     *time.Time `json:"expirationDate"`
	HasValidity        bool       `json:"hasValidity"`
	ExpirationComputed bool       `json:"expirationComputed"`
	SignatureSummary   string     `json:"signatureSummary"`
	StorageKey         string     `json:"storageKey"`
	FileName           string     `json:"fileName"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
