package resolution

import (
	"testing"

	"compliance-backend/internal/catalog"
)

func testCatalog() []catalog.DocumentType {
	two := 2
	one := 1
	return []catalog.DocumentType{
		{ID: "t-nr35", Code: "NR35", Name: "NR-35 Trabalho em Altura", DefaultValidityYears: &two},
		{ID: "t-nr10", Code: "NR10", Name: "NR-10 Segurança em Eletricidade", DefaultValidityYears: &two},
		{ID: "t-aso", Code: "ASO", Name: "Atestado de Saúde Ocupacional", DefaultValidityYears: &one},
		{ID: "t-cnh", Code: "CNH", Name: "Carteira Nacional de Habilitação", DefaultValidityYears: nil},
		{ID: "t-rg", Code: "RG", Name: "Registro Geral"},
		{ID: "t-outro", Code: "OUTRO", Name: "Outro Documento"},
	}
}

func TestMatchTypeExactCodeIgnoresCaseAndPunctuation(t *testing.T) {
	entries := testCatalog()
	cases := []struct {
		name string
		code string
		want string
	}{
		{name: "lower_with_dash", code: "nr-35", want: "t-nr35"},
		{name: "spaced", code: "NR 35", want: "t-nr35"},
		{name: "plain", code: "NR35", want: "t-nr35"},
		{name: "dotted", code: "a.s.o", want: "t-aso"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchType(RawType{Code: tc.code}, entries)
			if got == nil || got.ID != tc.want {
				t.Fatalf("MatchType(%q) = %v, want %s", tc.code, got, tc.want)
			}
		})
	}
}

func TestMatchTypeRegulatoryNumber(t *testing.T) {
	entries := []catalog.DocumentType{
		{ID: "t-alt", Code: "ALTURA", Name: "Treinamento NR-35 (Altura)"},
		{ID: "t-nr3", Code: "XNR3", Name: "NR-3 Embargo"},
	}

	got := MatchType(RawType{Code: "NR35"}, entries)
	if got == nil || got.ID != "t-alt" {
		t.Fatalf("expected NR35 to match entry carrying NR-35 in name, got %v", got)
	}

	// NR3 must not piggyback on the NR35 entry.
	if got := MatchType(RawType{Code: "NR9"}, entries); got != nil {
		t.Fatalf("expected no match for NR9, got %s", got.ID)
	}
}

func TestMatchTypeNRTokenDoesNotMatchLongerNumber(t *testing.T) {
	entries := []catalog.DocumentType{
		{ID: "t-nr35", Code: "NR35", Name: "Trabalho em Altura"},
	}
	if got := MatchType(RawType{Code: "NR-3"}, entries); got != nil {
		t.Fatalf("NR3 must not match NR35, got %s", got.ID)
	}
}

func TestMatchTypeAlias(t *testing.T) {
	entries := testCatalog()
	cases := []struct {
		name string
		raw  RawType
		want string
	}{
		{name: "aso_from_name", raw: RawType{Name: "Atestado de saúde ocupacional do colaborador"}, want: "t-aso"},
		{name: "cnh_from_name", raw: RawType{Name: "Carteira de Motorista"}, want: "t-cnh"},
		{name: "rg_from_name", raw: RawType{Name: "Documento de Identidade"}, want: "t-rg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchType(tc.raw, entries)
			if got == nil || got.ID != tc.want {
				t.Fatalf("MatchType(%+v) = %v, want %s", tc.raw, got, tc.want)
			}
		})
	}
}

func TestMatchTypeContainment(t *testing.T) {
	entries := testCatalog()

	got := MatchType(RawType{Name: "trabalho em altura"}, entries)
	if got == nil || got.ID != "t-nr35" {
		t.Fatalf("expected containment match on name, got %v", got)
	}
}

func TestMatchTypeCascadeOrder(t *testing.T) {
	// An exact code hit must win even when the name would alias elsewhere.
	entries := testCatalog()
	got := MatchType(RawType{Code: "NR10", Name: "atestado de saúde"}, entries)
	if got == nil || got.ID != "t-nr10" {
		t.Fatalf("exact code must win over alias, got %v", got)
	}
}

func TestMatchTypeUnmatched(t *testing.T) {
	entries := testCatalog()
	if got := MatchType(RawType{Code: "BRIGADA", Name: "Certificado de Brigadista"}, entries); got != nil {
		t.Fatalf("expected nil for unknown type, got %s", got.ID)
	}
	if got := MatchType(RawType{}, entries); got != nil {
		t.Fatalf("expected nil for empty raw type, got %s", got.ID)
	}
	if got := MatchType(RawType{Code: "NR35"}, nil); got != nil {
		t.Fatalf("expected nil against empty catalog, got %s", got.ID)
	}
}

func TestNormalizeCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: " nr-35 ", want: "NR35"},
		{in: "N.R. 10", want: "NR10"},
		{in: "aso", want: "ASO"},
		{in: "", want: ""},
	}
	for _, tc := range cases {
		if got := NormalizeCode(tc.in); got != tc.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsUnknownCode(t *testing.T) {
	for _, code := range []string{"", "outro", "OUTROS", "Desconhecido", "unknown", "n/a"} {
		if !IsUnknownCode(code) {
			t.Errorf("IsUnknownCode(%q) = false, want true", code)
		}
	}
	for _, code := range []string{"NR35", "ASO", "BRIGADA"} {
		if IsUnknownCode(code) {
			t.Errorf("IsUnknownCode(%q) = true, want false", code)
		}
	}
}
