package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TimeRange bounds acceptable publication years. A zero bound is open.
type TimeRange struct {
	StartYear int `json:"start_year,omitempty"`
	EndYear   int `json:"end_year,omitempty"`
}

// EvidenceConstraints restricts what gathered material is acceptable.
// Values are immutable; refinements flow through MergeConstraints, never
// through in-place mutation, so a Plan's constraints stay stable across
// loop iterations.
type EvidenceConstraints struct {
	SourceTypes []SourceType `json:"source_types,omitempty"`
	TimeRange   *TimeRange   `json:"time_range,omitempty"`
	Quality     string       `json:"quality,omitempty"`
}

// ParseConstraints decodes a caller-supplied JSON constraints string.
// A malformed string is a configuration error and must be surfaced
// before any gathering begins.
func ParseConstraints(raw string) (*EvidenceConstraints, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var c EvidenceConstraints
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("invalid constraints JSON: %w", err)
	}
	return &c, nil
}

// MergeConstraints produces a new constraints value where every non-null
// field of override replaces the corresponding base field. Both inputs
// are left untouched. Returns nil when both inputs are nil.
func MergeConstraints(base, override *EvidenceConstraints) *EvidenceConstraints {
	if base == nil && override == nil {
		return nil
	}
	merged := &EvidenceConstraints{}
	if base != nil {
		merged.SourceTypes = base.SourceTypes
		merged.TimeRange = base.TimeRange
		merged.Quality = base.Quality
	}
	if override != nil {
		if override.SourceTypes != nil {
			merged.SourceTypes = override.SourceTypes
		}
		if override.TimeRange != nil {
			merged.TimeRange = override.TimeRange
		}
		if override.Quality != "" {
			merged.Quality = override.Quality
		}
	}
	return merged
}

// AllowsSourceType reports whether the source type survives the
// source_types restriction. An empty restriction allows everything.
func (c *EvidenceConstraints) AllowsSourceType(st SourceType) bool {
	if c == nil || len(c.SourceTypes) == 0 {
		return true
	}
	for _, allowed := range c.SourceTypes {
		if allowed == st {
			return true
		}
	}
	return false
}

// AllowsYears checks the time_range restriction against year tokens in
// the given text. The latest 4-digit token found is compared against the
// bounds; text with no year tokens passes.
func (c *EvidenceConstraints) AllowsYears(text string) bool {
	if c == nil || c.TimeRange == nil {
		return true
	}
	latest := 0
	for _, token := range strings.Fields(text) {
		if year, ok := parseYearToken(token); ok && year > latest {
			latest = year
		}
	}
	if latest == 0 {
		return true
	}
	if c.TimeRange.StartYear != 0 && latest < c.TimeRange.StartYear {
		return false
	}
	if c.TimeRange.EndYear != 0 && latest > c.TimeRange.EndYear {
		return false
	}
	return true
}

// parseYearToken accepts only bare 4-digit tokens
func parseYearToken(token string) (int, bool) {
	if len(token) != 4 {
		return 0, false
	}
	year := 0
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, false
		}
		year = year*10 + int(r-'0')
	}
	return year, true
}
