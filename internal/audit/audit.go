// Package audit judges an uploaded photo against the QA rubric, optionally
// grounded in a previously extracted brand spec, via a single LLM call.
package audit

import (
	"context"

	"github.com/mockhotels/brandaudit/internal/llm"
	"github.com/mockhotels/brandaudit/internal/normalize"
	"github.com/mockhotels/brandaudit/internal/prompts"
	"github.com/mockhotels/brandaudit/internal/types"
)

// DefaultImageMIME is assumed when the upload mechanism supplies no type.
const DefaultImageMIME = "image/jpeg"

// Auditor runs the image QA check.
type Auditor struct {
	client llm.Client
}

// NewAuditor creates an image auditor backed by the given client.
func NewAuditor(client llm.Client) *Auditor {
	return &Auditor{client: client}
}

// Audit sends the photo, the QA rubric, and the optional brand spec context
// to the model in exactly one call, then maps the reply to a Verdict. A
// transport or service failure returns a ServiceError and no verdict; a
// reply that is not a JSON verdict degrades to an unparsed Verdict.
func (a *Auditor) Audit(ctx context.Context, image []byte, mimeType string, spec *types.BrandSpec) (types.Verdict, error) {
	if mimeType == "" {
		mimeType = DefaultImageMIME
	}

	text, err := a.client.Generate(ctx, llm.Request{
		System: buildSystemPrompt(spec),
		Parts: []llm.Part{
			llm.BlobPart(mimeType, image),
			llm.TextPart(prompts.MustGet("audit.json", "qa-instruction")),
		},
		Tier: llm.TierStandard,
	})
	if err != nil {
		return types.Verdict{}, &ServiceError{
			Message: "failed to generate content from LLM",
			Cause:   err,
		}
	}

	return mapVerdict(normalize.Normalize(text)), nil
}

// buildSystemPrompt concatenates the fixed rubric with the serialized brand
// spec, when one is cached and non-empty.
func buildSystemPrompt(spec *types.BrandSpec) string {
	rubric := prompts.MustGet("audit.json", "qa-rubric")
	if spec == nil || !spec.HasContent() {
		return rubric
	}

	context := prompts.Format(prompts.MustGet("audit.json", "qa-context"), map[string]string{
		"Spec": spec.ContextText(),
	})
	return rubric + "\n\n" + context
}
