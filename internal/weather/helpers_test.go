package weather

import (
	"time"
)

var day0 = NewDate(2025, time.March, 10)

func ptr(v float64) *float64 { return &v }

// daySamples returns eight 3-hourly samples starting at local midnight of d
// under offsetSeconds, one per temperature.
func daySamples(d Date, offsetSeconds int, temps []float64, desc string) []Sample {
	start := d.In(time.UTC).Add(-time.Duration(offsetSeconds) * time.Second)
	out := make([]Sample, 0, len(temps))
	for i, t := range temps {
		out = append(out, Sample{
			Time:        start.Add(time.Duration(i) * Cadence),
			Temperature: t,
			FeelsLike:   t,
			HumidityPct: 60,
			WindSpeedMS: 3,
			Description: desc,
		})
	}
	return out
}

var flatDay = []float64{12, 12, 12, 12, 12, 12, 12, 12}

// fiveDaySeries covers day0..day0+4; the last day spans 10..20 °C.
func fiveDaySeries() Series {
	s := Series{Location: "Testville"}
	for i := 0; i < 4; i++ {
		s.Samples = append(s.Samples, daySamples(day0.AddDays(i), 0, flatDay, "light rain")...)
	}
	s.Samples = append(s.Samples, daySamples(day0.AddDays(4), 0, []float64{10, 12, 14, 16, 20, 18, 15, 12}, "clear sky")...)
	return s
}
