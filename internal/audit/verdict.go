package audit

import (
	"github.com/mockhotels/brandaudit/internal/normalize"
	"github.com/mockhotels/brandaudit/internal/schemas"
	"github.com/mockhotels/brandaudit/internal/types"
)

// Presentation defaults for fields the model omitted.
const (
	defaultDescription = "No description provided."
	defaultResolution  = "No resolution provided."
)

// mapVerdict converts a normalized model reply into a Verdict. The verdict
// contract is a JSON object; anything else (raw text, a bare list, a scalar)
// degrades to the unparsed form with the original text intact.
func mapVerdict(res normalize.Result) types.Verdict {
	if !res.Parsed {
		return types.Verdict{Raw: res.Raw}
	}

	fields, ok := res.Value.(map[string]any)
	if !ok {
		return types.Verdict{Raw: res.Raw}
	}

	v := types.Verdict{
		Parsed:       true,
		IssuePresent: boolField(fields, "Issue_Present"),
		Category:     categoryField(fields, "Category"),
		Description:  stringField(fields, "Description", defaultDescription),
		Resolution:   stringField(fields, "Resolution", defaultResolution),
		Raw:          res.Raw,
	}
	v.SchemaValid = schemas.ValidateVerdict(res.Cleaned) == nil
	return v
}

// boolField reads a boolean, tolerating the string spellings models
// occasionally produce despite the schema.
func boolField(fields map[string]any, key string) bool {
	switch val := fields[key].(type) {
	case bool:
		return val
	case string:
		return val == "true" || val == "True" || val == "yes" || val == "Yes"
	default:
		return false
	}
}

func categoryField(fields map[string]any, key string) types.Category {
	s, ok := fields[key].(string)
	if !ok {
		return types.CategoryUnknown
	}
	c := types.Category(s)
	if !c.Known() {
		return types.CategoryUnknown
	}
	return c
}

func stringField(fields map[string]any, key, fallback string) string {
	if s, ok := fields[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
