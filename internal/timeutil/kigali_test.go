package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	// 23:30 UTC is already 01:30 the next day in Kigali
	utc := time.Date(2026, time.March, 14, 23, 30, 0, 0, time.UTC)
	got := StartOfDay(utc)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 0, got.Hour())
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, 28, got.Day())
	assert.Equal(t, Kigali, got.Location())

	_, err = ParseDate("28-02-2026")
	assert.Error(t, err)
}
