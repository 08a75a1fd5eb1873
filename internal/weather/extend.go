package weather

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// Cadence is the sample spacing Extend continues from the last real sample.
	Cadence = 3 * time.Hour

	slotsPerDay = 8

	// diurnalPeakShift places the warmest slot in the mid-to-late afternoon.
	diurnalPeakShift = 0.6
)

// ErrIrregularCadence is returned by CheckCadence when samples are not on the
// 3-hour grid Extend continues.
var ErrIrregularCadence = errors.New("series is not on a 3-hour cadence")

// CheckCadence verifies the precondition of Extend: every gap between
// consecutive samples is a positive multiple of Cadence. Missing slots are
// allowed, off-grid or duplicate timestamps are not.
func CheckCadence(s Series) error {
	step := int64(Cadence / time.Second)
	for i := 1; i < len(s.Samples); i++ {
		gap := s.Samples[i].Time.Unix() - s.Samples[i-1].Time.Unix()
		if gap <= 0 || gap%step != 0 {
			return fmt.Errorf("%w: %s -> %s", ErrIrregularCadence,
				s.Samples[i-1].Time.UTC().Format(time.RFC3339), s.Samples[i].Time.UTC().Format(time.RFC3339))
		}
	}
	return nil
}

// Extend returns a series whose last local day is at least target. Missing
// days are synthesized at the 3-hour cadence from the last real timestamp,
// eight samples per day, using a diurnal cosine between the min and max of
// the last local day. Humidity, wind and description are copied from that
// same seed for every synthetic day.
//
// The input series is never modified. An empty series, or one that already
// reaches target, is returned as is.
func Extend(s Series, target Date) Series {
	if len(s.Samples) == 0 {
		return s
	}

	lastDay := DateOf(s.Samples[0].Time, s.TZOffsetSeconds)
	lastTime := s.Samples[0].Time
	for _, sample := range s.Samples[1:] {
		if d := DateOf(sample.Time, s.TZOffsetSeconds); d.After(lastDay) {
			lastDay = d
		}
		if sample.Time.After(lastTime) {
			lastTime = sample.Time
		}
	}
	if !lastDay.Before(target) {
		return s
	}

	seed := seedStats(s, lastDay)
	tMin := seed.min
	tMax := math.Max(seed.max, seed.min)

	missing := target.DaysSince(lastDay)
	out := Series{
		Location:        s.Location,
		TZOffsetSeconds: s.TZOffsetSeconds,
		Samples:         make([]Sample, len(s.Samples), len(s.Samples)+missing*slotsPerDay),
	}
	copy(out.Samples, s.Samples)

	wind := roundTenth(seed.wind)
	for day := 0; day < missing; day++ {
		for slot := 0; slot < slotsPerDay; slot++ {
			lastTime = lastTime.Add(Cadence)
			temp := DiurnalTemp(tMin, tMax, float64(slot)/slotsPerDay)
			low := roundTenth(math.Min(temp, tMin))
			high := roundTenth(math.Max(temp, tMax))
			out.Samples = append(out.Samples, Sample{
				Time:        lastTime,
				Temperature: roundTenth(temp),
				FeelsLike:   roundTenth(temp),
				TempMin:     &low,
				TempMax:     &high,
				HumidityPct: seed.humidity,
				WindSpeedMS: wind,
				Description: seed.description,
				Synthetic:   true,
			})
		}
	}
	return out
}

// DiurnalTemp maps a phase in [0,1) of a synthetic day onto [tMin, tMax]
// with a raised cosine peaking at phase 0.1 after the 0.6 shift.
func DiurnalTemp(tMin, tMax, phase float64) float64 {
	x := phase - diurnalPeakShift
	x -= math.Floor(x)
	return tMin + (tMax-tMin)*(1-math.Cos(2*math.Pi*x))/2
}

// seedStats summarizes the given local day, falling back to the latest day
// actually present when it has no samples.
func seedStats(s Series, day Date) dayStats {
	buckets := Bucket(s)
	samples, ok := buckets.Lookup(day)
	if !ok || len(samples) == 0 {
		_, last, _ := buckets.Bounds()
		samples, _ = buckets.Lookup(last)
	}
	return statsOf(samples)
}
