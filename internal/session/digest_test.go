package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest_Deterministic(t *testing.T) {
	doc := []byte("brand standards v3: lobby signage must use Pantone 2935")

	first := Digest(doc)
	second := Digest(doc)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // sha256 hex
}

func TestDigest_SingleByteChange(t *testing.T) {
	doc := []byte("brand standards v3")
	changed := []byte("brand standards v4")

	assert.NotEqual(t, Digest(doc), Digest(changed))
}

func TestDigest_EmptyInput(t *testing.T) {
	// Empty documents still get a stable fingerprint.
	assert.Equal(t, Digest(nil), Digest([]byte{}))
	assert.NotEmpty(t, Digest(nil))
}
