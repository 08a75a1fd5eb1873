package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeHighLowHumidity(t *testing.T) {
	samples := daySamples(day0, 0, []float64{8.4, 11, 13.6, 9}, "")
	samples[1].TempMax = ptr(15.5)
	samples[2].TempMin = ptr(6.6)
	samples[0].HumidityPct = 70
	samples[1].HumidityPct = 61
	samples[2].HumidityPct = 50
	samples[3].HumidityPct = 50

	got := Summarize(day0, samples, 0)

	assert.Equal(t, day0, got.Date)
	// 15.5 rounds half to even.
	assert.Equal(t, 16.0, got.High)
	assert.Equal(t, 7.0, got.Low)
	// mean 57.75
	assert.Equal(t, 58, got.AvgHumidity)
	assert.False(t, got.NoData)
	assert.False(t, got.Estimated)
}

func TestSummarizeRoundsHalfToEven(t *testing.T) {
	samples := daySamples(day0, 0, []float64{2.5, -0.4}, "")
	got := Summarize(day0, samples, 0)

	assert.Equal(t, 2.0, got.High)
	assert.Equal(t, 0.0, got.Low)
	assert.Equal(t, "0", whole(got.Low))
}

func TestSummarizeNormalizesInvertedBounds(t *testing.T) {
	samples := daySamples(day0, 0, []float64{15}, "")
	samples[0].TempMin = ptr(20)
	samples[0].TempMax = ptr(10)

	got := Summarize(day0, samples, 0)
	assert.LessOrEqual(t, got.Low, got.High)
	assert.Equal(t, 10.0, got.Low)
	assert.Equal(t, 20.0, got.High)
}

func TestSummarizeBoundsWithinInput(t *testing.T) {
	samples := daySamples(day0, 0, []float64{3.2, 7.9, -1.4, 5.5, 12.1, 9.8, 4.4, 0.6}, "")
	samples[4].TempMax = ptr(13.2)
	samples[2].TempMin = ptr(-2.3)

	got := Summarize(day0, samples, 0)
	assert.LessOrEqual(t, got.Low, got.High)
	assert.GreaterOrEqual(t, got.Low, roundWhole(-2.3))
	assert.LessOrEqual(t, got.High, roundWhole(13.2))
}

func TestRepresentativeDescriptionPrefersNoonOrAfternoon(t *testing.T) {
	samples := daySamples(day0, 0, flatDay, "")
	for i := range samples {
		samples[i].Description = []string{"h00", "h03", "h06", "h09", "h12", "h15", "h18", "h21"}[i]
	}

	// 12:00 and 15:00 tie; the earlier sample wins.
	assert.Equal(t, "h12", Summarize(day0, samples, 0).Description)

	// Without the 12:00 slot the 15:00 one is closest.
	withoutNoon := append(append([]Sample{}, samples[:4]...), samples[5:]...)
	assert.Equal(t, "h15", Summarize(day0, withoutNoon, 0).Description)
}

func TestRepresentativeDescriptionUsesLocalHour(t *testing.T) {
	const offset = 3 * 3600
	samples := daySamples(day0, offset, flatDay, "")
	for i := range samples {
		samples[i].Description = "slot"
	}
	// Local 12:00 is index 4 regardless of offset.
	samples[4].Description = "noon"

	assert.Equal(t, "noon", Summarize(day0, samples, offset).Description)
}

func TestRepresentativeDescriptionFallsBackToMode(t *testing.T) {
	samples := daySamples(day0, 0, flatDay, "")
	samples[0].Description = "fog"
	samples[1].Description = "rain"
	samples[2].Description = "rain"
	samples[6].Description = "fog"
	// samples[4] (12:00) has no description.

	// fog and rain tie at two; fog was seen first.
	got := Summarize(day0, samples, 0)
	assert.Equal(t, "fog", got.Description)
	assert.Equal(t, ConditionMist, got.Condition)
}

func TestRepresentativeDescriptionNA(t *testing.T) {
	got := Summarize(day0, daySamples(day0, 0, flatDay, ""), 0)
	assert.Equal(t, "n/a", got.Description)
	assert.Equal(t, ConditionUnknown, got.Condition)
}

func TestSummarizeIsDeterministic(t *testing.T) {
	samples := daySamples(day0, 0, []float64{1, 2, 3, 4, 5, 6, 7, 8}, "")
	for i := range samples {
		samples[i].Description = []string{"a", "b", "c", "b", "", "c", "a", "b"}[i]
	}
	first := Summarize(day0, samples, 0)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Summarize(day0, samples, 0))
	}
}

func TestStatsOf(t *testing.T) {
	samples := daySamples(day0, 0, []float64{10, 20}, "")
	samples[0].Description = "cloudy"
	samples[1].Description = "cloudy"
	samples[0].HumidityPct = 41
	samples[1].HumidityPct = 44
	samples[0].WindSpeedMS = 2
	samples[1].WindSpeedMS = 5

	st := statsOf(samples)
	assert.Equal(t, 10.0, st.min)
	assert.Equal(t, 20.0, st.max)
	// 42.5 rounds to even.
	assert.Equal(t, 42, st.humidity)
	assert.Equal(t, 3.5, st.wind)
	assert.Equal(t, "cloudy", st.description)

	noDesc := statsOf(daySamples(day0, 0, []float64{1}, ""))
	assert.Equal(t, "forecast", noDesc.description)
}

func TestClassifyDescription(t *testing.T) {
	cases := map[string]Condition{
		"light rain":      ConditionRain,
		"Thunderstorm":    ConditionStorm,
		"overcast clouds": ConditionCloudy,
		"clear sky":       ConditionClear,
		"Sunny":           ConditionClear,
		"heavy snow":      ConditionSnow,
		"mist":            ConditionMist,
		"n/a":             ConditionUnknown,
		"":                ConditionUnknown,
		"volcanic ash":    ConditionUnknown,
	}
	for desc, want := range cases {
		assert.Equal(t, want, ClassifyDescription(desc), desc)
	}
}
