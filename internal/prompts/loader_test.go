package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ExtractionPrompt(t *testing.T) {
	prompt, err := Get("extraction.json", "extract-brand-spec")
	require.NoError(t, err)
	assert.Contains(t, prompt, "BrandName")
	assert.Contains(t, prompt, "RequiredColors")
}

func TestGet_ExtendedExtractionPrompt(t *testing.T) {
	prompt, err := Get("extraction.json", "extract-brand-spec-extended")
	require.NoError(t, err)
	assert.Contains(t, prompt, "compliance auditor")
	assert.Contains(t, prompt, "RoomRequirements")
}

func TestGet_AuditRubric(t *testing.T) {
	prompt, err := Get("audit.json", "qa-rubric")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Condition")
	assert.Contains(t, prompt, "Cleanliness")
	assert.Contains(t, prompt, "Compliance")
}

func TestGet_AuditInstructionSchema(t *testing.T) {
	prompt, err := Get("audit.json", "qa-instruction")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Issue_Present")
	assert.Contains(t, prompt, "Resolution")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get("extraction.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	assert.NotPanics(t, func() {
		prompt := MustGet("audit.json", "qa-rubric")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "Judge {{.Subject}} against {{.Standard}}."
	data := map[string]string{
		"Subject":  "the lobby photo",
		"Standard": "the brand manual",
	}

	result := Format(template, data)
	assert.Equal(t, "Judge the lobby photo against the brand manual.", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_AuditContextTemplate(t *testing.T) {
	template := MustGet("audit.json", "qa-context")
	require.Contains(t, template, "{{.Spec}}")

	result := Format(template, map[string]string{"Spec": `{"BrandName":"Mock Hotels"}`})
	assert.Contains(t, result, `{"BrandName":"Mock Hotels"}`)
	assert.NotContains(t, result, "{{.Spec}}")
}
