package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/mockhotels/brandaudit/internal/types"
)

func TestPrintVerdict_Structured(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVerdict(&types.Verdict{
		Parsed:       true,
		IssuePresent: true,
		Category:     types.CategoryCondition,
		Description:  "scuffed wall",
		Resolution:   "repaint",
		SchemaValid:  true,
	})

	out := buf.String()
	assert.Contains(t, out, "QA VERDICT")
	assert.Contains(t, out, "Issue:      YES")
	assert.Contains(t, out, "Condition")
	assert.Contains(t, out, "repaint")
}

func TestPrintVerdict_Unparsed(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintVerdict(&types.Verdict{Raw: "not json at all"})

	out := buf.String()
	assert.Contains(t, out, "UNPARSED")
	assert.Contains(t, out, "not json at all")
}

func TestPrintVerdict_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintVerdict(nil)
	assert.Empty(t, buf.String())
}

func TestPrintBrandSpec_Structured(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	spec := types.StructuredSpec(map[string]any{"BrandName": "Mock Hotels"}, `{"BrandName":"Mock Hotels"}`)
	p.PrintBrandSpec(&spec)

	out := buf.String()
	assert.Contains(t, out, "EXTRACTED BRAND SPEC")
	assert.Contains(t, out, "Mock Hotels")
}

func TestPrintBrandSpec_MultibyteLineTruncation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	// A long line of two-byte runes must be cut on a rune boundary.
	spec := types.RawSpec(strings.Repeat("é", 120))
	p.PrintBrandSpec(&spec)

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "...")
	assert.Equal(t, boxWidth-7, strings.Count(out, "é"))
}

func TestPrintBrandSpec_RawPreviewTruncates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	spec := types.RawSpec(strings.Repeat("line\n", 30))
	p.PrintBrandSpec(&spec)

	assert.Contains(t, buf.String(), "more lines")
}
