package chronos

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestDur(t *testing.T) {
	assert.Equal(t, Dur("1m30s"), 90*time.Second)
	assert.Equal(t, Dur("5s"), 5*time.Second)
}

func TestDur_PanicsOnBadLiteral(t *testing.T) {
	defer func() {
		assert.Assert(t, recover() != nil)
	}()
	Dur("five seconds")
}

func TestNow_Zones(t *testing.T) {
	zone, _ := Now("UTC").Zone()
	assert.Equal(t, zone, "UTC")

	zone, _ = Now("").Zone()
	assert.Equal(t, zone, "UTC")

	// unknown names fall back to UTC instead of carrying a nil location
	zone, _ = Now("Neverwhere/Nowhere").Zone()
	assert.Equal(t, zone, "UTC")
}

func TestNow_Local(t *testing.T) {
	got := Now("LOCAL")
	assert.Equal(t, got.Location(), time.Local)
}

func TestIn(t *testing.T) {
	utc := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	chi := In(utc, "America/Chicago")
	assert.Assert(t, chi.Equal(utc))

	zone, offset := chi.Zone()
	assert.Equal(t, zone, "CDT")
	assert.Equal(t, offset, -5*60*60)
}
