package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimePtr(t *testing.T) {
	assert.Nil(t, formatTimePtr(nil))

	ts := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-02T09:00:00Z", formatTimePtr(&ts))

	zoned := ts.In(time.FixedZone("UTC+5", 5*3600))
	assert.Equal(t, "2024-01-02T09:00:00Z", formatTimePtr(&zoned))
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysSince(nil, now))

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 9, daysSince(&start, now))

	future := now.Add(48 * time.Hour)
	assert.Equal(t, 0, daysSince(&future, now))
}
