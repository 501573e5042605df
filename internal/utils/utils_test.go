package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionsURL(t *testing.T) {
	url := DirectionsURL(14.634915, -90.506882)
	assert.True(t, strings.HasPrefix(url, "https://www.google.com/maps/dir/?api=1&destination="))
	assert.Contains(t, url, "14.634915,-90.506882")
	assert.Contains(t, url, "travelmode=driving")
}

func TestMapURL(t *testing.T) {
	url := MapURL(14.634915, -90.506882)
	assert.Equal(t, "https://www.google.com/maps?q=14.634915,-90.506882&z=17", url)
}

func TestGeneratePassword(t *testing.T) {
	tests := []struct {
		name           string
		length         int
		expectedLength int
	}{
		{name: "default length", length: 0, expectedLength: 10},
		{name: "negative falls back to default", length: -5, expectedLength: 10},
		{name: "explicit length", length: 16, expectedLength: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password := GeneratePassword(tt.length)
			assert.Len(t, password, tt.expectedLength)
			for _, c := range password {
				assert.Contains(t, passwordAlphabet, string(c))
			}
		})
	}
}

func TestGeneratePassword_NotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		seen[GeneratePassword(10)] = true
	}
	assert.Greater(t, len(seen), 1, "passwords should not repeat across generations")
}
