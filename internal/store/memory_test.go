package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-webhook/internal/weather"
)

func newTestStore(ttl time.Duration, maxEntries int) (*MemoryStore, *time.Time) {
	s := NewMemoryStore(ttl, maxEntries)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func series(city string, temps ...float64) weather.Series {
	base := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	s := weather.Series{Location: city}
	for i, t := range temps {
		s.Samples = append(s.Samples, weather.Sample{Time: base.Add(time.Duration(i) * weather.Cadence), Temperature: t})
	}
	return s
}

func TestMemoryStoreDisabled(t *testing.T) {
	s, _ := newTestStore(0, 0)
	assert.False(t, s.Enabled())

	loc := weather.Location{City: "Oslo"}
	s.SaveSeries(loc, series("Oslo", 1, 2))
	_, err := s.GetSeries(loc)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStoreSaveAndGet(t *testing.T) {
	s, _ := newTestStore(time.Hour, 0)
	loc := weather.Location{City: "Oslo", Country: "NO"}

	s.SaveSeries(loc, series("Oslo", 1, 2, 3))

	got, err := s.GetSeries(weather.Location{City: "OSLO", Country: "no"})
	require.NoError(t, err)
	assert.Equal(t, "Oslo", got.Location)
	assert.Len(t, got.Samples, 3)
}

func TestMemoryStoreCopiesSamples(t *testing.T) {
	s, _ := newTestStore(time.Hour, 0)
	loc := weather.Location{City: "Oslo"}
	in := series("Oslo", 1, 2)

	s.SaveSeries(loc, in)
	in.Samples[0].Temperature = 99

	got, err := s.GetSeries(loc)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Samples[0].Temperature)

	got.Samples[1].Temperature = 42
	again, err := s.GetSeries(loc)
	require.NoError(t, err)
	assert.Equal(t, 2.0, again.Samples[1].Temperature)
}

func TestMemoryStoreExpiryAndPurge(t *testing.T) {
	s, now := newTestStore(10*time.Minute, 0)
	oslo := weather.Location{City: "Oslo"}
	rome := weather.Location{City: "Rome"}

	s.SaveSeries(oslo, series("Oslo", 1))
	*now = now.Add(6 * time.Minute)
	s.SaveSeries(rome, series("Rome", 20))
	*now = now.Add(5 * time.Minute)

	_, err := s.GetSeries(oslo)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetSeries(rome)
	assert.NoError(t, err)

	assert.Equal(t, 1, s.Purge())
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStoreEvictsOldest(t *testing.T) {
	s, now := newTestStore(time.Hour, 2)

	for _, city := range []string{"Oslo", "Rome", "Lima"} {
		s.SaveSeries(weather.Location{City: city}, series(city, 1))
		*now = now.Add(time.Minute)
	}

	assert.Equal(t, 2, s.Len())
	_, err := s.GetSeries(weather.Location{City: "Oslo"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetSeries(weather.Location{City: "Lima"})
	assert.NoError(t, err)
}
