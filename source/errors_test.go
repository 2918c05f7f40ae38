package source

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	base := errors.New("connection reset")

	assert.True(t, IsTransient(Transient(base)))
	assert.False(t, IsPermanent(Transient(base)))
	assert.True(t, IsPermanent(Permanent(base)))
	assert.False(t, IsTransient(Permanent(base)))

	// Unwrapped errors carry no classification.
	assert.False(t, IsTransient(base))
	assert.False(t, IsPermanent(base))

	assert.Nil(t, Transient(nil))
	assert.Nil(t, Permanent(nil))
}

func TestErrorTaxonomySurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("fetch %s: %w", "https://example.com", Transient(errors.New("503")))
	assert.True(t, IsTransient(err))
	assert.True(t, errors.Is(err, err))
}

func TestTargetDomain(t *testing.T) {
	assert.Equal(t, "www.example.com", Target{URL: "https://www.example.com/recipes/1"}.Domain())
	assert.Equal(t, "not a url", Target{URL: "not a url"}.Domain())
}
