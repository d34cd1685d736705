// Package normalize interprets raw LLM replies: it strips markdown code
// fences and attempts a strict JSON decode. Parse failures are soft; the
// caller always gets the surviving text back.
package normalize

import (
	"encoding/json"
	"strings"
)

// Result is the outcome of normalizing one model reply.
type Result struct {
	// Value is the decoded JSON value when Parsed is true.
	Value any
	// Raw is the reply as received, trimmed of surrounding whitespace.
	Raw string
	// Cleaned is the fence-stripped candidate that was fed to the decoder.
	Cleaned string
	// Parsed reports whether Cleaned decoded as JSON.
	Parsed bool
	// Err holds the ParseError when Parsed is false. It is informational
	// and never propagated as a failure.
	Err error
}

// Normalize trims the reply, strips any code fences, and decodes the result
// as JSON. A reply that does not decode is returned with Parsed false and
// the original text intact.
func Normalize(text string) Result {
	raw := strings.TrimSpace(text)
	res := Result{Raw: raw, Cleaned: StripFences(raw)}

	var value any
	if err := json.Unmarshal([]byte(res.Cleaned), &value); err != nil {
		res.Err = &ParseError{Message: "reply is not valid JSON", Cause: err}
		return res
	}

	res.Value = value
	res.Parsed = true
	return res
}

// StripFences removes a markdown code fence wrapper from text.
// Matching is containment based: a ```json fence takes priority over a
// generic ``` fence, the payload runs from the first opener to the last
// closer, and an unclosed fence yields everything after the opener.
// Text without fences passes through trimmed.
func StripFences(text string) string {
	if _, after, found := strings.Cut(text, "```json"); found {
		return cutClosingFence(after)
	}
	if _, after, found := strings.Cut(text, "```"); found {
		return cutClosingFence(after)
	}
	return strings.TrimSpace(text)
}

func cutClosingFence(after string) string {
	if idx := strings.LastIndex(after, "```"); idx >= 0 {
		return strings.TrimSpace(after[:idx])
	}
	return strings.TrimSpace(after)
}
