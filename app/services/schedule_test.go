package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromUnixSeconds(t *testing.T) {
	// UTC-anchored: decoding is independent of the server's local zone.
	assert.Equal(t, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), FromUnixSeconds(0))
	assert.Equal(t, time.Date(2023, 5, 1, 12, 30, 0, 0, time.UTC), FromUnixSeconds(1682944200))
}

func TestFromUnixMillis(t *testing.T) {
	assert.Equal(t, time.Date(1970, 1, 1, 0, 0, 1, 0, time.UTC), FromUnixMillis(1000))
	assert.Equal(t, time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC), FromUnixMillis(1686355200000))
}

func TestWithDate(t *testing.T) {
	t.Run("keeps time of day and offset", func(t *testing.T) {
		zone := time.FixedZone("CEST", 2*60*60)
		current := time.Date(2023, 5, 1, 14, 30, 0, 0, zone)
		newDate := time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC)

		got := WithDate(current, newDate)

		assert.Equal(t, 2023, got.Year())
		assert.Equal(t, time.June, got.Month())
		assert.Equal(t, 10, got.Day())
		assert.Equal(t, 14, got.Hour())
		assert.Equal(t, 30, got.Minute())
		_, offset := got.Zone()
		assert.Equal(t, 2*60*60, offset)
	})

	t.Run("same date is a no-op", func(t *testing.T) {
		current := time.Date(2023, 5, 1, 14, 30, 45, 123, time.UTC)
		got := WithDate(current, time.Date(2023, 5, 1, 9, 9, 9, 9, time.UTC))
		assert.Equal(t, current, got)
	})
}
