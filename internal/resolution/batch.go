package resolution

import (
	"fmt"
	"strings"

	"compliance-backend/internal/catalog"
)

// ResolveBatch runs the full pipeline (match, validity, update detection,
// signature scoring) over a batch of raw scans. Output is 1:1 with input and
// in input order. Items are independent: a failed or panicking item yields an
// error-only marker and never affects its siblings. Failed raw scans pass
// through untouched, carrying only their error.
func (e *Engine) ResolveBatch(
	raws []RawScanResult,
	entries []catalog.DocumentType,
	existingByEmployee map[string][]ExistingDocument,
) []ResolvedDocument {
	out := make([]ResolvedDocument, 0, len(raws))
	for _, raw := range raws {
		out = append(out, e.resolveOne(raw, entries, existingByEmployee[raw.EmployeeID]))
	}
	return out
}

// ResolveOne resolves a single raw scan against the catalog and the
// employee's existing documents.
func (e *Engine) ResolveOne(raw RawScanResult, entries []catalog.DocumentType, existing []ExistingDocument) ResolvedDocument {
	return e.resolveOne(raw, entries, existing)
}

func (e *Engine) resolveOne(raw RawScanResult, entries []catalog.DocumentType, existing []ExistingDocument) (resolved ResolvedDocument) {
	defer func() {
		if r := recover(); r != nil {
			resolved = failureMarker(raw, fmt.Sprintf("resolution panic: %v", r))
		}
	}()

	if !raw.Success {
		return failureMarker(raw, raw.Error)
	}
	if strings.TrimSpace(raw.FileName) == "" {
		return failureMarker(raw, "scan result missing file name")
	}

	matched := MatchType(RawType{Code: raw.DocumentTypeCode, Name: raw.DocumentTypeName}, entries)

	validity := e.ResolveValidity(ParseDate(raw.ExpirationDate), ParseDate(raw.EmissionDate), matched)

	matchedID := ""
	if matched != nil {
		matchedID = matched.ID
	}
	update := e.DetectUpdate(matchedID, validity.ExpirationDate, existing)

	return ResolvedDocument{
		FileName:           raw.FileName,
		EmployeeID:         raw.EmployeeID,
		MatchedTypeID:      matchedID,
		RawTypeCode:        raw.DocumentTypeCode,
		RawTypeName:        raw.DocumentTypeName,
		ExpirationDate:     validity.ExpirationDate,
		ExpirationComputed: validity.Computed,
		HasValidity:        validity.HasValidity,
		IsUpdate:           update.IsUpdate,
		ExistingDocumentID: update.ExistingID,
		Signatures:         ScoreSignatures(raw.Signatures),
		Success:            true,
	}
}

func failureMarker(raw RawScanResult, message string) ResolvedDocument {
	if strings.TrimSpace(message) == "" {
		message = "classification failed"
	}
	return ResolvedDocument{
		FileName:   raw.FileName,
		EmployeeID: raw.EmployeeID,
		Success:    false,
		Error:      message,
	}
}
