package ingress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityIDFromTopic(t *testing.T) {
	tests := []struct {
		topic    string
		expected string
	}{
		{"devices/device-1/location", "device-1"},
		{"devices/KDA-123X/location", "KDA-123X"},
		{"devices/location", ""},
		{"vehicles/device-1/location", ""},
		{"devices/device-1/telemetry", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, entityIDFromTopic(tt.topic), "topic %q", tt.topic)
	}
}
