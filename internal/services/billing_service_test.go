package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRWF(t *testing.T) {
	assert.Equal(t, "0", FormatRWF(0))
	assert.Equal(t, "500", FormatRWF(500))
	assert.Equal(t, "1,000", FormatRWF(1000))
	assert.Equal(t, "100,000", FormatRWF(100000))
	assert.Equal(t, "1,234,567", FormatRWF(1234567))
	assert.Equal(t, "-5,000", FormatRWF(-5000))
}
