package resolution

import (
	"regexp"
	"strings"
	"unicode"

	"compliance-backend/internal/catalog"
)

// RawType is the AI-guessed document type for one scan.
type RawType struct {
	Code string
	Name string
}

var nrPattern = regexp.MustCompile(`^NR(\d+)$`)

// typeAliases maps canonical catalog codes to the substrings that identify
// them in free-text AI output. Alias matching is case-insensitive containment.
var typeAliases = []struct {
	Code    string
	Aliases []string
}{
	{Code: "ASO", Aliases: []string{"aso", "atestado", "saúde ocupacional", "saude ocupacional"}},
	{Code: "CNH", Aliases: []string{"cnh", "habilitação", "habilitacao", "carteira de motorista"}},
	{Code: "CTPS", Aliases: []string{"ctps", "carteira de trabalho"}},
	{Code: "RG", Aliases: []string{"rg", "registro geral", "identidade"}},
	{Code: "CPF", Aliases: []string{"cpf", "cadastro de pessoa"}},
}

// MatchType resolves a raw AI-guessed type against the catalog using an
// ordered cascade: exact normalized code, NR-number containment, domain
// alias, then bidirectional name containment. The first strategy producing a
// match is authoritative; nil means unmatched and never an error.
func MatchType(raw RawType, entries []catalog.DocumentType) *catalog.DocumentType {
	strategies := []func(RawType, []catalog.DocumentType) *catalog.DocumentType{
		matchExactCode,
		matchRegulatoryNumber,
		matchAlias,
		matchContainment,
	}
	for _, strategy := range strategies {
		if entry := strategy(raw, entries); entry != nil {
			return entry
		}
	}
	return nil
}

func matchExactCode(raw RawType, entries []catalog.DocumentType) *catalog.DocumentType {
	code := NormalizeCode(raw.Code)
	if code == "" {
		return nil
	}
	for i := range entries {
		if NormalizeCode(entries[i].Code) == code {
			return &entries[i]
		}
	}
	return nil
}

// matchRegulatoryNumber matches codes like "NR-35", "NR 35" or "nr35" to any
// entry whose code or name carries the same NR token. Normalization already
// strips separators, so all variants collapse to "NR35".
func matchRegulatoryNumber(raw RawType, entries []catalog.DocumentType) *catalog.DocumentType {
	code := NormalizeCode(raw.Code)
	m := nrPattern.FindStringSubmatch(code)
	if m == nil {
		return nil
	}
	token := "NR" + m[1]
	for i := range entries {
		if containsNRToken(NormalizeCode(entries[i].Code), token) ||
			containsNRToken(NormalizeCode(entries[i].Name), token) {
			return &entries[i]
		}
	}
	return nil
}

// containsNRToken reports whether normalized text carries the exact NR token,
// rejecting longer numbers (NR3 must not match NR35).
func containsNRToken(normalized, token string) bool {
	idx := strings.Index(normalized, token)
	for idx >= 0 {
		end := idx + len(token)
		if end >= len(normalized) || !unicode.IsDigit(rune(normalized[end])) {
			return true
		}
		next := strings.Index(normalized[idx+1:], token)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}

func matchAlias(raw RawType, entries []catalog.DocumentType) *catalog.DocumentType {
	haystacks := []string{
		strings.ToLower(strings.TrimSpace(raw.Name)),
		strings.ToLower(strings.TrimSpace(raw.Code)),
	}
	for _, group := range typeAliases {
		if !anyContains(haystacks, group.Aliases) {
			continue
		}
		canonical := NormalizeCode(group.Code)
		for i := range entries {
			if NormalizeCode(entries[i].Code) == canonical {
				return &entries[i]
			}
		}
	}
	return nil
}

func anyContains(haystacks, needles []string) bool {
	for _, hay := range haystacks {
		if hay == "" {
			continue
		}
		for _, needle := range needles {
			if strings.Contains(hay, needle) {
				return true
			}
		}
	}
	return false
}

func matchContainment(raw RawType, entries []catalog.DocumentType) *catalog.DocumentType {
	name := strings.ToLower(strings.TrimSpace(raw.Name))
	if name == "" {
		return nil
	}
	for i := range entries {
		entryName := strings.ToLower(strings.TrimSpace(entries[i].Name))
		if entryName == "" {
			continue
		}
		if strings.Contains(entryName, name) || strings.Contains(name, entryName) {
			return &entries[i]
		}
	}
	return nil
}

// NormalizeCode upper-cases and strips everything but letters and digits, so
// "nr-35", "NR 35" and "NR35" compare equal.
func NormalizeCode(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(raw)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// unknownCodeSentinels are raw codes that must never trigger catalog
// auto-creation: they mean the AI could not classify the document.
var unknownCodeSentinels = map[string]bool{
	"":             true,
	"OUTRO":        true,
	"OUTROS":       true,
	"DESCONHECIDO": true,
	"UNKNOWN":      true,
	"NA":           true,
}

// IsUnknownCode reports whether a raw code is an unknown/other sentinel.
func IsUnknownCode(raw string) bool {
	return unknownCodeSentinels[NormalizeCode(raw)]
}
