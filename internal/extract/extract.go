// Package extract turns an uploaded brand standards document into a
// BrandSpec via a single LLM call. The model reply is untrusted: replies
// that do not parse as JSON survive as raw text, never as a failure.
package extract

import (
	"context"

	"github.com/mockhotels/brandaudit/internal/llm"
	"github.com/mockhotels/brandaudit/internal/normalize"
	"github.com/mockhotels/brandaudit/internal/prompts"
	"github.com/mockhotels/brandaudit/internal/types"
)

// DefaultDocumentMIME is assumed when the upload mechanism supplies no type.
const DefaultDocumentMIME = "application/pdf"

// Extractor extracts brand requirements from document bytes.
type Extractor struct {
	client   llm.Client
	extended bool
}

// NewExtractor creates an extractor using the basic strict-keys prompt.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// NewExtendedExtractor creates an extractor using the detailed
// compliance-auditor prompt, which allows free-form sections.
func NewExtendedExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client, extended: true}
}

// Extract sends the document and the static extraction prompt to the model
// in exactly one call and normalizes the reply. A transport or service
// failure returns a ServiceError; a reply that is not JSON is not an error.
func (e *Extractor) Extract(ctx context.Context, document []byte, mimeType string) (types.BrandSpec, error) {
	if mimeType == "" {
		mimeType = DefaultDocumentMIME
	}

	key := "extract-brand-spec"
	if e.extended {
		key = "extract-brand-spec-extended"
	}

	text, err := e.client.Generate(ctx, llm.Request{
		System: prompts.MustGet("extraction.json", key),
		Parts: []llm.Part{
			llm.BlobPart(mimeType, document),
			llm.TextPart(prompts.MustGet("extraction.json", "extract-instruction")),
		},
		Tier: llm.TierStandard,
	})
	if err != nil {
		return types.BrandSpec{}, &ServiceError{
			Message: "failed to generate content from LLM",
			Cause:   err,
		}
	}

	res := normalize.Normalize(text)
	if !res.Parsed {
		return types.RawSpec(res.Raw), nil
	}
	return types.StructuredSpec(res.Value, res.Raw), nil
}
