package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskhive/internal/validation"
)

func TestValidSlug(t *testing.T) {
	for _, s := range []string{"getting-started", "a", "v2", "release-2026-01"} {
		assert.True(t, validation.ValidSlug(s), s)
	}
	for _, s := range []string{"", "-lead", "trail-", "double--dash", "Upper", "with space", "under_score"} {
		assert.False(t, validation.ValidSlug(s), s)
	}
}
