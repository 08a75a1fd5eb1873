package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutlookExtendsPastProviderHorizon(t *testing.T) {
	start, end := day0.AddDays(3), day0.AddDays(10)

	out := BuildOutlook(fiveDaySeries(), start, end, 8)

	require.Equal(t, WindowInRange, out.Window.Status)
	assert.Equal(t, start, out.Window.Start)
	assert.Equal(t, end, out.Window.End)
	assert.Equal(t, "Testville", out.Location)
	require.Len(t, out.Days, 8)

	for i, d := range out.Days {
		assert.Equal(t, start.AddDays(i), d.Date)
	}
	for _, d := range out.Days[2:] {
		assert.Equal(t, 10.0, d.Low, d.Date.String())
		assert.Equal(t, 20.0, d.High, d.Date.String())
		assert.Equal(t, 60, d.AvgHumidity)
		assert.Equal(t, "clear sky", d.Description)
		assert.True(t, d.Estimated)
	}
	assert.False(t, out.Days[0].Estimated)
}

func TestOutlookWithoutExtensionClipsToCoverage(t *testing.T) {
	start, end := day0.AddDays(3), day0.AddDays(10)

	out := BuildOutlook(fiveDaySeries(), start, end, 0)

	require.Equal(t, WindowClipped, out.Window.Status)
	assert.Equal(t, start, out.Window.Start)
	assert.Equal(t, day0.AddDays(4), out.Window.End)
	assert.Len(t, out.Days, 2)
}

func TestOutlookEmptySeriesIsNoData(t *testing.T) {
	out := BuildOutlook(Series{Location: "Nowhere"}, day0, day0.AddDays(7), 8)

	assert.Equal(t, WindowNoData, out.Window.Status)
	assert.False(t, out.Window.Answerable())
	assert.Empty(t, out.Days)
}

func TestOutlookRequestBeforeCoverageIsOutOfRange(t *testing.T) {
	start, end := day0.AddDays(-20), day0.AddDays(-13)

	out := BuildOutlook(fiveDaySeries(), start, end, 8)

	assert.Equal(t, WindowOutOfRange, out.Window.Status)
	assert.Equal(t, day0, out.Window.AvailableFrom)
	assert.Equal(t, day0.AddDays(4), out.Window.AvailableTo)
	assert.Equal(t, start, out.Window.RequestedStart)
	assert.Equal(t, end, out.Window.RequestedEnd)
	assert.Empty(t, out.Days)
}

func TestOutlookGapYieldsNoDataPlaceholder(t *testing.T) {
	s := fiveDaySeries()
	var kept []Sample
	for _, sample := range s.Samples {
		if DateOf(sample.Time, 0) != day0.AddDays(2) {
			kept = append(kept, sample)
		}
	}
	s.Samples = kept

	out := BuildOutlook(s, day0, day0.AddDays(7), 8)

	require.True(t, out.Window.Answerable())
	require.Len(t, out.Days, out.Window.End.DaysSince(out.Window.Start)+1)
	gap := out.Days[2]
	assert.Equal(t, day0.AddDays(2), gap.Date)
	assert.True(t, gap.NoData)
	assert.Equal(t, "n/a", gap.Description)
	assert.False(t, out.Days[1].NoData)
	assert.False(t, out.Days[3].NoData)
}

func TestResolveInRangeIsIdempotent(t *testing.T) {
	b := Bucket(fiveDaySeries())

	w, days := Resolve(b, 0, day0.AddDays(1), day0.AddDays(3))
	assert.Equal(t, WindowInRange, w.Status)
	assert.Equal(t, w.RequestedStart, w.Start)
	assert.Equal(t, w.RequestedEnd, w.End)
	assert.Len(t, days, 3)

	again, _ := Resolve(b, 0, w.Start, w.End)
	assert.Equal(t, w, again)
}

func TestResolveClipsBothEnds(t *testing.T) {
	b := Bucket(fiveDaySeries())

	w, days := Resolve(b, 0, day0.AddDays(-2), day0.AddDays(9))
	assert.Equal(t, WindowClipped, w.Status)
	assert.Equal(t, day0, w.Start)
	assert.Equal(t, day0.AddDays(4), w.End)
	assert.Len(t, days, 5)
}

func TestResolveAfterCoverageIsOutOfRange(t *testing.T) {
	b := Bucket(fiveDaySeries())

	w, days := Resolve(b, 0, day0.AddDays(5), day0.AddDays(12))
	assert.Equal(t, WindowOutOfRange, w.Status)
	assert.Nil(t, days)
}

func TestOutlookFarFutureIsOutOfRangeWithBoundedSynthesis(t *testing.T) {
	start := NewDate(2400, time.January, 1)
	end := start.AddDays(7)

	out := BuildOutlook(fiveDaySeries(), start, end, 8)

	assert.Equal(t, WindowOutOfRange, out.Window.Status)
	assert.Equal(t, day0, out.Window.AvailableFrom)
	// Synthesis stops eight days past the last real day.
	assert.Equal(t, day0.AddDays(4+8), out.Window.AvailableTo)
	assert.Empty(t, out.Days)
}

func TestOutlookHorizonCapsPartialWindow(t *testing.T) {
	start, end := day0.AddDays(10), day0.AddDays(17)

	out := BuildOutlook(fiveDaySeries(), start, end, 8)

	require.Equal(t, WindowClipped, out.Window.Status)
	assert.Equal(t, start, out.Window.Start)
	assert.Equal(t, day0.AddDays(12), out.Window.End)
	assert.Len(t, out.Days, 3)
}
