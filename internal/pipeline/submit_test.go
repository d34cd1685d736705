package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockhotels/brandaudit/internal/session"
	"github.com/mockhotels/brandaudit/internal/types"
)

type fakeExtractor struct {
	calls int
	spec  types.BrandSpec
	err   error
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte, _ string) (types.BrandSpec, error) {
	f.calls++
	if f.err != nil {
		return types.BrandSpec{}, f.err
	}
	return f.spec, nil
}

type fakeAuditor struct {
	calls    int
	lastSpec *types.BrandSpec
	verdict  types.Verdict
	err      error
}

func (f *fakeAuditor) Audit(_ context.Context, _ []byte, _ string, spec *types.BrandSpec) (types.Verdict, error) {
	f.calls++
	f.lastSpec = spec
	if f.err != nil {
		return types.Verdict{}, f.err
	}
	return f.verdict, nil
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	st := session.NewStore(time.Hour, time.Hour)
	t.Cleanup(st.Stop)
	return st.Create()
}

func okVerdict() types.Verdict {
	return types.Verdict{Parsed: true, Category: types.CategoryCleanliness, Description: "x", Resolution: "y", SchemaValid: true}
}

func TestSubmit_MissingImage(t *testing.T) {
	ex := &fakeExtractor{}
	au := &fakeAuditor{}
	sub := NewSubmitter(ex, au, nil)
	sess := newTestSession(t)

	_, err := sub.Submit(context.Background(), sess, Input{Document: []byte("doc"), HasDocument: true})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "image", vErr.Field)
	// Zero outbound calls and no state mutation.
	assert.Zero(t, ex.calls)
	assert.Zero(t, au.calls)
	_, _, ok := sess.CachedSpec()
	assert.False(t, ok)
}

func TestSubmit_EmptyDocumentPart(t *testing.T) {
	ex := &fakeExtractor{}
	au := &fakeAuditor{}
	sub := NewSubmitter(ex, au, nil)
	sess := newTestSession(t)

	_, err := sub.Submit(context.Background(), sess, Input{Image: []byte("img"), HasDocument: true})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, ex.calls)
	assert.Zero(t, au.calls)
}

func TestSubmit_AuditOnlyFlow(t *testing.T) {
	ex := &fakeExtractor{}
	au := &fakeAuditor{verdict: okVerdict()}
	sub := NewSubmitter(ex, au, nil)
	sess := newTestSession(t)

	res, err := sub.Submit(context.Background(), sess, Input{Image: []byte("img"), ImageMIME: "image/png"})
	require.NoError(t, err)

	assert.Zero(t, ex.calls)
	assert.Equal(t, 1, au.calls)
	assert.Nil(t, au.lastSpec)
	assert.Nil(t, res.Spec)

	v, ok := sess.LastVerdict()
	require.True(t, ok)
	assert.Equal(t, res.Verdict, *v)
}

func TestSubmit_FirstDocumentTriggersExtraction(t *testing.T) {
	spec := types.StructuredSpec(map[string]any{"BrandName": "Mock Hotels"}, `{"BrandName":"Mock Hotels"}`)
	ex := &fakeExtractor{spec: spec}
	au := &fakeAuditor{verdict: okVerdict()}
	sub := NewSubmitter(ex, au, nil)
	sess := newTestSession(t)

	res, err := sub.Submit(context.Background(), sess, Input{
		Image:       []byte("img"),
		Document:    []byte("doc-v1"),
		HasDocument: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, ex.calls)
	assert.Equal(t, 1, au.calls)
	assert.True(t, res.Extracted)
	assert.False(t, res.CacheHit)
	require.NotNil(t, au.lastSpec)
	assert.True(t, au.lastSpec.Parsed)
}

func TestSubmit_UnchangedDocumentReusesCache(t *testing.T) {
	ex := &fakeExtractor{spec: types.RawSpec("extracted once")}
	au := &fakeAuditor{verdict: okVerdict()}
	sub := NewSubmitter(ex, au, nil)
	sess := newTestSession(t)

	in := Input{Image: []byte("img"), Document: []byte("same-doc"), HasDocument: true}

	_, err := sub.Submit(context.Background(), sess, in)
	require.NoError(t, err)
	res, err := sub.Submit(context.Background(), sess, in)
	require.NoError(t, err)

	// One extraction for two submits; second is a cache hit.
	assert.Equal(t, 1, ex.calls)
	assert.Equal(t, 2, au.calls)
	assert.True(t, res.CacheHit)
	assert.False(t, res.Extracted)
	require.NotNil(t, au.lastSpec)
	assert.Equal(t, "extracted once", au.lastSpec.Raw)
}

func TestSubmit_ChangedDocumentReplacesCache(t *testing.T) {
	ex := &fakeExtractor{spec: types.RawSpec("first")}
	au := &fakeAuditor{verdict: okVerdict()}
	sub := NewSubmitter(ex, au, nil)
	sess := newTestSession(t)

	_, err := sub.Submit(context.Background(), sess, Input{Image: []byte("img"), Document: []byte("doc-v1"), HasDocument: true})
	require.NoError(t, err)

	ex.spec = types.RawSpec("second")
	res, err := sub.Submit(context.Background(), sess, Input{Image: []byte("img"), Document: []byte("doc-v2"), HasDocument: true})
	require.NoError(t, err)

	assert.Equal(t, 2, ex.calls)
	assert.True(t, res.Extracted)

	spec, _, ok := sess.CachedSpec()
	require.True(t, ok)
	assert.Equal(t, "second", spec.Raw)
}

func TestSubmit_ExtractionFailureClearsCacheAndAuditProceeds(t *testing.T) {
	ex := &fakeExtractor{spec: types.RawSpec("cached")}
	au := &fakeAuditor{verdict: okVerdict()}
	sub := NewSubmitter(ex, au, nil)
	sess := newTestSession(t)

	// Prime the cache with a successful extraction.
	_, err := sub.Submit(context.Background(), sess, Input{Image: []byte("img"), Document: []byte("doc-v1"), HasDocument: true})
	require.NoError(t, err)

	// A changed document with a failing extraction call.
	ex.err = errors.New("transport error")
	res, err := sub.Submit(context.Background(), sess, Input{Image: []byte("img"), Document: []byte("doc-v2"), HasDocument: true})
	require.NoError(t, err)

	require.Error(t, res.ExtractionErr)
	assert.Nil(t, res.Spec)
	assert.Nil(t, au.lastSpec) // audit ran with no document context
	assert.Equal(t, 2, au.calls)

	// Cache is absent, not stale.
	_, _, ok := sess.CachedSpec()
	assert.False(t, ok)
}

func TestSubmit_AuditFailureProducesNoVerdict(t *testing.T) {
	ex := &fakeExtractor{spec: types.RawSpec("spec")}
	au := &fakeAuditor{err: errors.New("service unavailable")}
	sub := NewSubmitter(ex, au, nil)
	sess := newTestSession(t)

	_, err := sub.Submit(context.Background(), sess, Input{Image: []byte("img"), Document: []byte("doc"), HasDocument: true})
	require.Error(t, err)

	// The extraction that succeeded earlier in the same submit stays cached.
	_, _, ok := sess.CachedSpec()
	assert.True(t, ok)
	_, ok = sess.LastVerdict()
	assert.False(t, ok)
}

func TestSubmit_EndToEndCallCounts(t *testing.T) {
	ex := &fakeExtractor{spec: types.RawSpec("SpecA")}
	au := &fakeAuditor{verdict: okVerdict()}
	sub := NewSubmitter(ex, au, nil)
	sess := newTestSession(t)

	d1 := []byte("document D1")
	i1 := []byte("image I1")

	// First submit: one extraction, one audit.
	res, err := sub.Submit(context.Background(), sess, Input{Image: i1, Document: d1, HasDocument: true})
	require.NoError(t, err)
	assert.True(t, res.Extracted)
	assert.Equal(t, 1, ex.calls)
	assert.Equal(t, 1, au.calls)

	// Re-submit with the same document and image: no new extraction.
	res, err = sub.Submit(context.Background(), sess, Input{Image: i1, Document: d1, HasDocument: true})
	require.NoError(t, err)
	assert.True(t, res.CacheHit)
	assert.Equal(t, 1, ex.calls)
	assert.Equal(t, 2, au.calls)
}
