package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Spice  Route_Kitchen", "spice-route-kitchen"},
		{"  Taco Loco!  ", "taco-loco"},
		{"already-fine", "already-fine"},
		{"UPPER", "upper"},
		{"---", ""},
		{"café 24/7", "caf-24-7"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSlug(tt.input))
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("spice-route"))
	assert.True(t, IsValidSlug("a1"))
	assert.False(t, IsValidSlug("a"))
	assert.False(t, IsValidSlug("-leading"))
	assert.False(t, IsValidSlug("trailing-"))
	assert.False(t, IsValidSlug("double--dash"))
	assert.False(t, IsValidSlug("Has-Upper"))
}
