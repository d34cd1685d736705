// Package rendering builds the server-rendered HTML surface: the access
// gate, the upload form, the extraction panel, and the verdict card. View
// models are computed here so templates stay free of logic.
package rendering

import "github.com/mockhotels/brandaudit/internal/types"

// Verdict tones select the card's visual treatment. For a parsed verdict
// the tone depends solely on whether an issue is present; output that could
// not be interpreted gets its own distinct treatment.
const (
	ToneOK       = "ok"
	ToneIssue    = "issue"
	ToneUnparsed = "unparsed"
)

// Page is the view model for the main page.
type Page struct {
	Authenticated bool
	LoginError    string

	// Notice is an informational banner, e.g. the cache-hit message.
	Notice string
	// Error is a hard-failure banner for an aborted submit.
	Error string
	// ExtractionError reports a failed extraction call whose submit still
	// completed (the audit ran without document context).
	ExtractionError string

	// ShowSpec opens the extraction disclosure, set right after a fresh
	// extraction. The panel is otherwise collapsed by default.
	ShowSpec bool
	Spec     *SpecView
	Verdict  *VerdictView
}

// SpecView presents a cached extraction.
type SpecView struct {
	Parsed bool
	// JSON is the indented rendering of a structured spec.
	JSON string
	// Raw is shown when the extraction did not parse.
	Raw string
}

// NewSpecView builds the extraction panel view.
func NewSpecView(spec types.BrandSpec) *SpecView {
	v := &SpecView{Parsed: spec.Parsed, Raw: spec.Raw}
	if display, ok := spec.DisplayJSON(); ok {
		v.JSON = display
	}
	return v
}

// VerdictView presents a QA verdict.
type VerdictView struct {
	Tone         string
	Parsed       bool
	IssuePresent bool
	Category     string
	Description  string
	Resolution   string
	SchemaValid  bool
	Raw          string
}

// NewVerdictView builds the verdict card view.
func NewVerdictView(v types.Verdict) *VerdictView {
	view := &VerdictView{
		Parsed:       v.Parsed,
		IssuePresent: v.IssuePresent,
		Category:     string(v.Category),
		Description:  v.Description,
		Resolution:   v.Resolution,
		SchemaValid:  v.SchemaValid,
		Raw:          v.Raw,
	}
	switch {
	case !v.Parsed:
		view.Tone = ToneUnparsed
	case v.IssuePresent:
		view.Tone = ToneIssue
	default:
		view.Tone = ToneOK
	}
	return view
}
