package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskhive/internal/validation"
)

func TestTruthy_AcceptedLiterals(t *testing.T) {
	cases := []struct {
		in   interface{}
		want bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"false", false},
		{"1", true},
		{"0", false},
		{float64(1), true},
		{float64(0), false},
		{1, true},
		{0, false},
	}

	for _, c := range cases {
		got, ok := validation.Truthy(c.in)
		assert.True(t, ok, "expected %v (%T) to be accepted", c.in, c.in)
		assert.Equal(t, c.want, got, "value for %v (%T)", c.in, c.in)
	}
}

func TestTruthy_RejectedValues(t *testing.T) {
	rejected := []interface{}{
		"yes", "no", "TRUE", "on", "", 2, -1, float64(0.5), nil, []string{"true"},
	}

	for _, v := range rejected {
		_, ok := validation.Truthy(v)
		assert.False(t, ok, "expected %v (%T) to be rejected", v, v)
	}
}
