package resolution

import (
	"strings"
	"time"
)

// Engine resolves raw AI scan output into validated document records.
// It is pure: no I/O, no shared mutable state, safe for concurrent use.
type Engine struct {
	// Now supplies the current time for the validity fallback and the
	// expired-record check. Defaults to time.Now.
	Now func() time.Time
}

// NewEngine constructs an Engine with the real clock.
func NewEngine() *Engine {
	return &Engine{Now: time.Now}
}

func (e *Engine) now() time.Time {
	if e != nil && e.Now != nil {
		return e.Now().UTC()
	}
	return time.Now().UTC()
}

// dateLayouts are tried in order when parsing AI-extracted date strings.
// Unparseable dates are treated as absent, never as an error.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
}

// ParseDate parses an AI-extracted date string. Returns nil when the string
// is empty or cannot be understood in any accepted layout.
func ParseDate(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			normalized := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return &normalized
		}
	}
	return nil
}
