package wikirev_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskhive/internal/service/wikirev"
)

func TestShouldSnapshot(t *testing.T) {
	svc := wikirev.NewService()

	// Identical input never produces a revision.
	assert.False(t, svc.ShouldSnapshot("Guide", "body", "Guide", "body"))

	assert.True(t, svc.ShouldSnapshot("Guide", "body", "Guide v2", "body"))
	assert.True(t, svc.ShouldSnapshot("Guide", "body", "Guide", "body edited"))
	assert.True(t, svc.ShouldSnapshot("Guide", "body", "Guide v2", "body edited"))
}

func TestSummary(t *testing.T) {
	svc := wikirev.NewService()

	assert.Equal(t, wikirev.DefaultSummary, svc.Summary(""))
	assert.Equal(t, "fixed typos", svc.Summary("fixed typos"))
}
