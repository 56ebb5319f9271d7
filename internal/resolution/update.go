package resolution

import "time"

// UpdateDecision says whether a scan replaces an existing stored document.
type UpdateDecision struct {
	IsUpdate   bool
	ExistingID string
}

// DetectUpdate decides update-vs-new for a resolved scan against the
// employee's existing documents. Only same-type records are considered; the
// first one in input order wins even if duplicates exist (stored data may
// legitimately carry more than one record per type, the detector does not
// enforce uniqueness). A candidate is an update when the scan extends its
// validity, fills a missing expiration, or the stored record is already
// expired.
func (e *Engine) DetectUpdate(matchedTypeID string, newExpiration *time.Time, existing []ExistingDocument) UpdateDecision {
	if matchedTypeID == "" {
		return UpdateDecision{}
	}

	var candidate *ExistingDocument
	for i := range existing {
		if existing[i].TypeID == matchedTypeID {
			candidate = &existing[i]
			break
		}
	}
	if candidate == nil {
		return UpdateDecision{}
	}

	switch {
	case newExpiration != nil && candidate.ExpirationDate != nil && newExpiration.After(*candidate.ExpirationDate):
		return UpdateDecision{IsUpdate: true, ExistingID: candidate.ID}
	case newExpiration != nil && candidate.ExpirationDate == nil:
		return UpdateDecision{IsUpdate: true, ExistingID: candidate.ID}
	case candidate.ExpirationDate != nil && candidate.ExpirationDate.Before(e.now()):
		return UpdateDecision{IsUpdate: true, ExistingID: candidate.ID}
	default:
		return UpdateDecision{}
	}
}
