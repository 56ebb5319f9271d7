package resolution

import "fmt"

const (
	statusFullySigned     = "Completamente assinado"
	statusPartiallySigned = "Parcialmente assinado"
	statusUnsigned        = "Sem assinaturas"
)

// ScoreSignatures normalizes a raw signature payload into the canonical
// completeness judgment. The count field and the per-role booleans are
// independent signals that usually agree; either one alone is enough to mark
// a document fully signed (a stale or missing count must not hide three
// detected signatures).
//
// The summary string is a wire contract: the nightly signature audit re-parses
// the literal "Assinaturas:" prefix and the "3/3" fraction. Do not reformat.
func ScoreSignatures(raw *RawSignatures) SignatureScore {
	var score SignatureScore
	if raw != nil {
		// The company signature arrives under has_company_signature or the
		// legacy has_responsible_signature; the explicit field wins when both
		// are present.
		if raw.HasCompany != nil {
			score.Company = *raw.HasCompany
		} else if raw.HasResponsible != nil {
			score.Company = *raw.HasResponsible
		}
		if raw.HasInstructor != nil {
			score.Instructor = *raw.HasInstructor
		}
		if raw.HasEmployee != nil {
			score.Employee = *raw.HasEmployee
		}

		roleCount := 0
		for _, signed := range []bool{score.Company, score.Instructor, score.Employee} {
			if signed {
				roleCount++
			}
		}

		if raw.Count != nil {
			score.Count = clampCount(*raw.Count)
		} else {
			score.Count = roleCount
		}
		if roleCount == 3 {
			score.Count = 3
		}
	}

	score.FullySigned = score.Count == 3 || (score.Company && score.Instructor && score.Employee)
	score.Summary = formatSignatureSummary(score)
	return score
}

func clampCount(count int) int {
	if count < 0 {
		return 0
	}
	if count > 3 {
		return 3
	}
	return count
}

func formatSignatureSummary(score SignatureScore) string {
	status := statusUnsigned
	switch {
	case score.Count == 3 || score.FullySigned:
		status = statusFullySigned
	case score.Count > 0:
		status = statusPartiallySigned
	}
	return fmt.Sprintf("Assinaturas: %d/3 (Empresa %s, Instrutor %s, Funcionário %s) - %s",
		score.Count,
		checkmark(score.Company),
		checkmark(score.Instructor),
		checkmark(score.Employee),
		status,
	)
}

func checkmark(signed bool) string {
	if signed {
		return "✓"
	}
	return "✗"
}
