package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRwandaNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"local with leading zero", "0788123456", "250788123456"},
		{"local without zero", "788123456", "250788123456"},
		{"already prefixed", "250788123456", "250788123456"},
		{"formatted with spaces", "078 812 3456", "250788123456"},
		{"formatted with plus", "+250 788 123 456", "250788123456"},
		{"dashes", "0788-123-456", "250788123456"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRwandaNumber(tt.in))
		})
	}
}

func TestSendable(t *testing.T) {
	assert.True(t, Sendable("250788123456"))
	assert.False(t, Sendable("07881"))
	assert.False(t, Sendable(""))
}
