package dbtime

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := civil.Date{Year: 2025, Month: time.January, Day: 6}
	for _, in := range []string{"2025-01-06", " 6/1/2025 ", "06/01/2025"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "2025-13-01", "31/2/2025", "kemarin"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestTodayIn(t *testing.T) {
	// 2025-01-05 20:00 UTC = 2025-01-06 03:00 WIB
	now := time.Date(2025, 1, 5, 20, 0, 0, 0, time.UTC)
	wib := time.FixedZone("WIB", 7*3600)

	assert.Equal(t, civil.Date{Year: 2025, Month: time.January, Day: 6}, TodayIn(wib, now))
	assert.Equal(t, civil.Date{Year: 2025, Month: time.January, Day: 5}, TodayIn(nil, now))
}

func TestLoadLocation_Fallback(t *testing.T) {
	assert.NotNil(t, loadLocation("Bukan/Zona"))
	assert.NotNil(t, Location())
}
