package resolution

import (
	"time"

	"compliance-backend/internal/catalog"
)

// Validity is the resolved expiration judgment for one document.
type Validity struct {
	ExpirationDate *time.Time
	Computed       bool
	HasValidity    bool
}

// ResolveValidity computes the authoritative expiration date. The rule order
// is behavior and must not change:
//
//  1. An explicit expiration from the scan wins verbatim.
//  2. No default validity on the matched type means the document is not
//     validity-tracked at all.
//  3. With an emission date, expiration is emission + validity years − 1 day
//     (the day before the anniversary).
//  4. With no emission date the same computation runs from today. Approximate
//     on purpose: a validity-tracked document never ends up with no
//     expiration.
func (e *Engine) ResolveValidity(explicit, emission *time.Time, matched *catalog.DocumentType) Validity {
	if explicit != nil {
		d := *explicit
		return Validity{ExpirationDate: &d, Computed: false, HasValidity: true}
	}
	if matched == nil || !matched.HasDefaultValidity() {
		return Validity{ExpirationDate: nil, Computed: false, HasValidity: false}
	}
	years := *matched.DefaultValidityYears
	if emission != nil {
		d := addValidity(*emission, years)
		return Validity{ExpirationDate: &d, Computed: true, HasValidity: true}
	}
	today := e.now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	d := addValidity(today, years)
	return Validity{ExpirationDate: &d, Computed: true, HasValidity: true}
}

// addValidity returns the day before the validity anniversary: a document
// emitted 2024-01-10 with 1 year of validity expires 2025-01-09.
func addValidity(base time.Time, years int) time.Time {
	return base.AddDate(years, 0, 0).AddDate(0, 0, -1)
}
