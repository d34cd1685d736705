// Package types defines the core data structures shared across the brand
// standards QA pipeline.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category classifies a QA finding.
type Category string

// Rubric categories. The auditor prompt constrains the model to the first
// three; Unknown is the presentation default when the field is absent.
const (
	CategoryCondition   Category = "Condition"
	CategoryCleanliness Category = "Cleanliness"
	CategoryCompliance  Category = "Compliance"
	CategoryUnknown     Category = "Unknown"
)

// Known reports whether the category is one of the rubric categories.
func (c Category) Known() bool {
	switch c {
	case CategoryCondition, CategoryCleanliness, CategoryCompliance:
		return true
	}
	return false
}

// BrandSpec is the outcome of extracting a brand standards document.
// It is a tagged variant: Structured holds the decoded JSON value when the
// model reply parsed, otherwise the reply survives only as Raw text.
// Raw is always retained for display.
type BrandSpec struct {
	Structured any    `json:"structured,omitempty"`
	Raw        string `json:"raw"`
	Parsed     bool   `json:"parsed"`
}

// StructuredSpec builds a BrandSpec from a decoded JSON value and the raw
// reply it was decoded from.
func StructuredSpec(value any, raw string) BrandSpec {
	return BrandSpec{Structured: value, Raw: raw, Parsed: true}
}

// RawSpec builds a BrandSpec for a reply that did not parse as JSON.
func RawSpec(raw string) BrandSpec {
	return BrandSpec{Raw: raw}
}

// HasContent reports whether the spec carries anything worth injecting into
// an audit prompt. Empty extractions (empty object, empty list, blank text)
// add no context.
func (s BrandSpec) HasContent() bool {
	if !s.Parsed {
		return strings.TrimSpace(s.Raw) != ""
	}
	switch v := s.Structured.(type) {
	case nil:
		return false
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	case string:
		return strings.TrimSpace(v) != ""
	default:
		return true
	}
}

// ContextText renders the spec for inclusion in the auditor system prompt.
// Structured objects and lists are serialized as compact JSON; scalar values
// and raw text pass through as plain text.
func (s BrandSpec) ContextText() string {
	if !s.Parsed {
		return s.Raw
	}
	switch v := s.Structured.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return s.Raw
		}
		return string(b)
	case string:
		return v
	case nil:
		return s.Raw
	default:
		return fmt.Sprintf("%v", v)
	}
}

// DisplayJSON renders a structured spec as indented JSON for the extraction
// panel. Returns false when the spec is not structured.
func (s BrandSpec) DisplayJSON() (string, bool) {
	if !s.Parsed {
		return "", false
	}
	b, err := json.MarshalIndent(s.Structured, "", "  ")
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Verdict is the mapped result of a single image QA check.
// When Parsed is false only Raw is meaningful: the model reply could not be
// interpreted as a JSON verdict and is surfaced verbatim.
type Verdict struct {
	Parsed       bool     `json:"parsed"`
	IssuePresent bool     `json:"issue_present"`
	Category     Category `json:"category,omitempty"`
	Description  string   `json:"description,omitempty"`
	Resolution   string   `json:"resolution,omitempty"`
	SchemaValid  bool     `json:"schema_valid"`
	Raw          string   `json:"raw"`
}
