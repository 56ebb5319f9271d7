package catalog

import "time"

// DocumentType is a catalog entry describing a kind of compliance document
// (NR training certificate, occupational health certificate, ID document).
type DocumentType struct {
	ID                   string
	CompanyID            string
	Code                 string
	Name                 string
	DefaultValidityYears *int
	CreatedAt            time.Time
}

// HasDefaultValidity reports whether documents of this type expire by default.
func (t DocumentType) HasDefaultValidity() bool {
	return t.DefaultValidityYears != nil && *t.DefaultValidityYears > 0
}
