// Package pipeline orchestrates one submit action: validate the uploads,
// refresh the cached extraction when the document changed, then run the
// image audit. Strictly sequential; the audit never starts before the
// extraction finishes because its context depends on the result.
package pipeline

import (
	"context"

	"github.com/mockhotels/brandaudit/internal/observability"
	"github.com/mockhotels/brandaudit/internal/session"
	"github.com/mockhotels/brandaudit/internal/types"
)

// Extractor produces a BrandSpec from document bytes.
type Extractor interface {
	Extract(ctx context.Context, document []byte, mimeType string) (types.BrandSpec, error)
}

// Auditor produces a Verdict from image bytes and optional spec context.
type Auditor interface {
	Audit(ctx context.Context, image []byte, mimeType string, spec *types.BrandSpec) (types.Verdict, error)
}

// Submitter runs the submit state machine against a session.
type Submitter struct {
	extractor Extractor
	auditor   Auditor
	printer   *observability.Printer // nil unless verbose
}

// NewSubmitter wires the two LLM-facing services. printer may be nil.
func NewSubmitter(extractor Extractor, auditor Auditor, printer *observability.Printer) *Submitter {
	return &Submitter{
		extractor: extractor,
		auditor:   auditor,
		printer:   printer,
	}
}

// Input is one submit action's uploads. HasDocument distinguishes "no
// document attached" from an attached empty file.
type Input struct {
	Image        []byte
	ImageMIME    string
	Document     []byte
	DocumentMIME string
	HasDocument  bool
}

// Result is what one submit produced.
type Result struct {
	Verdict types.Verdict
	// Spec is the extraction used as audit context, nil when none is cached.
	Spec *types.BrandSpec
	// Extracted reports that this submit ran a fresh extraction.
	Extracted bool
	// CacheHit reports that the document was unchanged and the cached
	// extraction was reused.
	CacheHit bool
	// ExtractionErr is set when the extraction call failed. The cache has
	// been cleared and the audit ran without document context.
	ExtractionErr error
}

// Submit runs one submit action. A ValidationError means nothing was sent to
// the provider and session state is untouched. An audit failure aborts the
// submit with no verdict. An extraction failure clears the cached spec but
// the audit still runs, context-free.
func (s *Submitter) Submit(ctx context.Context, sess *session.Session, in Input) (*Result, error) {
	if len(in.Image) == 0 {
		return nil, &ValidationError{Field: "image", Message: "an image is required"}
	}

	res := &Result{}

	if in.HasDocument {
		if len(in.Document) == 0 {
			return nil, &ValidationError{Field: "document", Message: "attached document is empty or unreadable"}
		}
		s.refreshSpec(ctx, sess, in, res)
	}

	if spec, _, ok := sess.CachedSpec(); ok {
		res.Spec = spec
	}

	verdict, err := s.auditor.Audit(ctx, in.Image, in.ImageMIME, res.Spec)
	if err != nil {
		return nil, err
	}
	sess.StoreVerdict(verdict)
	res.Verdict = verdict

	if s.printer != nil {
		s.printer.PrintVerdict(&verdict)
	}
	return res, nil
}

// refreshSpec re-extracts when no spec is cached or the document digest
// changed, and reuses the cache otherwise. On extraction failure the cache
// is cleared, never left stale.
func (s *Submitter) refreshSpec(ctx context.Context, sess *session.Session, in Input, res *Result) {
	digest := session.Digest(in.Document)
	if _, cachedDigest, ok := sess.CachedSpec(); ok && cachedDigest == digest {
		res.CacheHit = true
		return
	}

	spec, err := s.extractor.Extract(ctx, in.Document, in.DocumentMIME)
	if err != nil {
		sess.ClearSpec()
		res.ExtractionErr = err
		return
	}

	sess.StoreSpec(spec, digest)
	res.Extracted = true
	if s.printer != nil {
		s.printer.PrintBrandSpec(&spec)
	}
}
