package resolution

import (
	"strings"
	"testing"
)

func boolPtr(v bool) *bool { return &v }

func TestScoreSignaturesFromCount(t *testing.T) {
	got := ScoreSignatures(&RawSignatures{Count: intPtr(3)})
	if !got.FullySigned {
		t.Fatal("count=3 must mark fully signed")
	}
	if got.Count != 3 {
		t.Fatalf("Count = %d, want 3", got.Count)
	}
	if !strings.Contains(got.Summary, "Assinaturas: 3/3") {
		t.Fatalf("summary missing 3/3: %q", got.Summary)
	}
}

func TestScoreSignaturesBooleansOverrideStaleCount(t *testing.T) {
	got := ScoreSignatures(&RawSignatures{
		Count:         intPtr(0),
		HasCompany:    boolPtr(true),
		HasInstructor: boolPtr(true),
		HasEmployee:   boolPtr(true),
	})
	if !got.FullySigned {
		t.Fatal("all three roles signed must mark fully signed despite count=0")
	}
	if got.Count != 3 {
		t.Fatalf("Count = %d, want 3 after reconciliation", got.Count)
	}
	if !strings.Contains(got.Summary, "3/3") {
		t.Fatalf("summary must carry 3/3 when fully signed: %q", got.Summary)
	}
}

func TestScoreSignaturesLegacyResponsibleAlias(t *testing.T) {
	got := ScoreSignatures(&RawSignatures{HasResponsible: boolPtr(true)})
	if !got.Company {
		t.Fatal("has_responsible_signature must map to the company role")
	}

	// The explicit company field wins when both are present.
	got = ScoreSignatures(&RawSignatures{
		HasCompany:     boolPtr(false),
		HasResponsible: boolPtr(true),
	})
	if got.Company {
		t.Fatal("explicit has_company_signature=false must win over legacy alias")
	}
}

func TestScoreSignaturesSummaryFormat(t *testing.T) {
	cases := []struct {
		name string
		raw  *RawSignatures
		want string
	}{
		{
			name: "unsigned",
			raw:  &RawSignatures{},
			want: "Assinaturas: 0/3 (Empresa ✗, Instrutor ✗, Funcionário ✗) - Sem assinaturas",
		},
		{
			name: "partial",
			raw:  &RawSignatures{HasCompany: boolPtr(true), HasEmployee: boolPtr(true)},
			want: "Assinaturas: 2/3 (Empresa ✓, Instrutor ✗, Funcionário ✓) - Parcialmente assinado",
		},
		{
			name: "complete",
			raw: &RawSignatures{
				Count:         intPtr(3),
				HasCompany:    boolPtr(true),
				HasInstructor: boolPtr(true),
				HasEmployee:   boolPtr(true),
			},
			want: "Assinaturas: 3/3 (Empresa ✓, Instrutor ✓, Funcionário ✓) - Completamente assinado",
		},
		{
			name: "nil_payload",
			raw:  nil,
			want: "Assinaturas: 0/3 (Empresa ✗, Instrutor ✗, Funcionário ✗) - Sem assinaturas",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreSignatures(tc.raw)
			if got.Summary != tc.want {
				t.Fatalf("Summary = %q, want %q", got.Summary, tc.want)
			}
		})
	}
}

func TestScoreSignaturesSummaryRoundTrip(t *testing.T) {
	payloads := []*RawSignatures{
		nil,
		{},
		{Count: intPtr(1)},
		{Count: intPtr(2), HasCompany: boolPtr(true)},
		{Count: intPtr(3)},
		{Count: intPtr(7)},
		{Count: intPtr(-1)},
		{HasCompany: boolPtr(true), HasInstructor: boolPtr(true), HasEmployee: boolPtr(true)},
		{HasResponsible: boolPtr(true), HasInstructor: boolPtr(true), HasEmployee: boolPtr(true)},
	}
	for _, raw := range payloads {
		got := ScoreSignatures(raw)
		if !strings.Contains(got.Summary, "Assinaturas:") {
			t.Fatalf("summary missing prefix: %q", got.Summary)
		}
		if strings.Contains(got.Summary, "3/3") != got.FullySigned {
			t.Fatalf("3/3 presence must track FullySigned: %+v", got)
		}
	}
}

func TestScoreSignaturesClampsCount(t *testing.T) {
	if got := ScoreSignatures(&RawSignatures{Count: intPtr(9)}); got.Count != 3 {
		t.Fatalf("Count = %d, want clamp to 3", got.Count)
	}
	if got := ScoreSignatures(&RawSignatures{Count: intPtr(-2)}); got.Count != 0 {
		t.Fatalf("Count = %d, want clamp to 0", got.Count)
	}
}
