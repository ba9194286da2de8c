// Package model holds the domain types shared by the deck builder and the
// spreadsheet parser: domains, requirements, statuses and coverage stats.
package model

import (
	"fmt"
	"strings"
)

// Status is the availability state of a single requirement.
type Status int

const (
	StatusNow Status = iota
	StatusPartial
	StatusRoadmap
)

// Symbol returns the glyph shown next to the status label.
func (s Status) Symbol() string {
	switch s {
	case StatusNow:
		return "✅"
	case StatusPartial:
		return "⚡"
	case StatusRoadmap:
		return "\U0001f5fa"
	}
	return ""
}

// Label returns the canonical display label.
func (s Status) Label() string {
	switch s {
	case StatusNow:
		return "Now"
	case StatusPartial:
		return "Partial"
	case StatusRoadmap:
		return "Roadmap"
	}
	return ""
}

// Display is the symbol-prefixed form used in table cells, e.g. "✅ Now".
func (s Status) Display() string {
	return s.Symbol() + " " + s.Label()
}

func (s Status) String() string { return s.Label() }

// statusAliases maps a normalized token to a status. Matching is exact on the
// cleaned token, never fuzzy.
var statusAliases = map[string]Status{
	"now":       StatusNow,
	"available": StatusNow,
	"yes":       StatusNow,
	"partial":   StatusPartial,
	"roadmap":   StatusRoadmap,
	"planned":   StatusRoadmap,
	"future":    StatusRoadmap,
}

// statusGlyphs are the symbol prefixes stripped (and recognized on their own)
// during normalization.
var statusGlyphs = []struct {
	glyph  string
	status Status
}{
	{"✅", StatusNow},
	{"⚡", StatusPartial},
	{"\U0001f5fa", StatusRoadmap},
}

// NormalizeStatus parses free-form status text into a Status. It trims
// whitespace, strips known symbol glyphs, and case-folds before matching the
// remainder against the known labels and their aliases. A bare symbol is
// enough. Anything else fails with ErrUnknownStatus.
func NormalizeStatus(raw string) (Status, error) {
	var bySymbol *Status
	cleaned := raw
	for _, g := range statusGlyphs {
		if strings.Contains(cleaned, g.glyph) {
			st := g.status
			if bySymbol == nil {
				bySymbol = &st
			}
			cleaned = strings.ReplaceAll(cleaned, g.glyph, "")
		}
	}
	cleaned = strings.ReplaceAll(cleaned, "\ufe0f", "")
	cleaned = strings.ToLower(strings.TrimSpace(cleaned))

	if st, ok := statusAliases[cleaned]; ok {
		return st, nil
	}
	// A recognized symbol decides on its own; trailing text like
	// "✅ Now (agent)" keeps the symbol's status.
	if bySymbol != nil {
		return *bySymbol, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

// Requirement is a single trackable capability. Construct through
// NewRequirement so a Requirement never exists with an invalid status.
type Requirement struct {
	Name        string
	Description string
	Status      Status
	Signal      string
}

// NewRequirement builds a Requirement, normalizing the status text. An
// unrecognized status fails with ErrUnknownStatus.
func NewRequirement(name, description, status, signal string) (Requirement, error) {
	st, err := NormalizeStatus(status)
	if err != nil {
		return Requirement{}, fmt.Errorf("requirement %q: %w", name, err)
	}
	return Requirement{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Status:      st,
		Signal:      strings.TrimSpace(signal),
	}, nil
}

// Domain is a named group of requirements. Order is significant: slides follow
// the order of both domains and their requirements.
type Domain struct {
	Name         string
	Description  string
	Requirements []Requirement
}
