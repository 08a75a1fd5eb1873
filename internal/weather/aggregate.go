package weather

import "math"

const (
	noDataDescription = "n/a"
	seedDescription   = "forecast"
)

// Summarize reduces one non-empty day of samples into a DaySummary.
// Temperatures are computed at full precision and rounded to whole degrees
// only in the returned summary. The offset is used for the local hour-of-day
// when picking the representative description.
func Summarize(date Date, samples []Sample, offsetSeconds int) DaySummary {
	if len(samples) == 0 {
		return NoDataSummary(date)
	}

	high := math.Inf(-1)
	low := math.Inf(1)
	var sumHumidity float64
	estimated := false

	for _, s := range samples {
		high = math.Max(high, s.High())
		low = math.Min(low, s.Low())
		sumHumidity += float64(s.HumidityPct)
		if s.Synthetic {
			estimated = true
		}
	}
	// Inverted provider bounds still yield low <= high.
	if low > high {
		low, high = high, low
	}

	desc := representativeDescription(samples, offsetSeconds)

	return DaySummary{
		Date:        date,
		High:        roundWhole(high),
		Low:         roundWhole(low),
		AvgHumidity: int(roundWhole(sumHumidity / float64(len(samples)))),
		Description: desc,
		Condition:   ClassifyDescription(desc),
		Estimated:   estimated,
	}
}

// NoDataSummary is the placeholder for a date with no samples.
func NoDataSummary(date Date) DaySummary {
	return DaySummary{
		Date:        date,
		Description: noDataDescription,
		Condition:   ConditionUnknown,
		NoData:      true,
	}
}

// representativeDescription prefers the sample closest to 12:00 or 15:00
// local time, earliest first on ties, then the most frequent label.
func representativeDescription(samples []Sample, offsetSeconds int) string {
	best := -1
	bestDist := math.MaxInt
	for i, s := range samples {
		hour := localHour(s, offsetSeconds)
		dist := min(absInt(hour-12), absInt(hour-15))
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best >= 0 && samples[best].Description != "" {
		return samples[best].Description
	}
	if desc, ok := modeDescription(samples); ok {
		return desc
	}
	return noDataDescription
}

// modeDescription returns the most frequent non-empty description,
// first-encountered on ties.
func modeDescription(samples []Sample) (string, bool) {
	counts := make(map[string]int)
	var order []string
	for _, s := range samples {
		if s.Description == "" {
			continue
		}
		if counts[s.Description] == 0 {
			order = append(order, s.Description)
		}
		counts[s.Description]++
	}

	bestDesc := ""
	bestCount := 0
	for _, desc := range order {
		if counts[desc] > bestCount {
			bestCount = counts[desc]
			bestDesc = desc
		}
	}
	return bestDesc, bestCount > 0
}

// dayStats is the seed for synthetic days.
type dayStats struct {
	min, max    float64
	humidity    int
	wind        float64
	description string
}

func statsOf(samples []Sample) dayStats {
	st := dayStats{min: math.Inf(1), max: math.Inf(-1), description: seedDescription}
	var sumHumidity, sumWind float64
	for _, s := range samples {
		st.min = math.Min(st.min, s.Low())
		st.max = math.Max(st.max, s.High())
		sumHumidity += float64(s.HumidityPct)
		sumWind += s.WindSpeedMS
	}
	n := float64(len(samples))
	st.humidity = int(roundWhole(sumHumidity / n))
	st.wind = sumWind / n
	if desc, ok := modeDescription(samples); ok {
		st.description = desc
	}
	return st
}

func localHour(s Sample, offsetSeconds int) int {
	return s.Time.In(fixedZone(offsetSeconds)).Hour()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// roundWhole rounds half to even, matching how figures are displayed.
func roundWhole(v float64) float64 {
	r := math.RoundToEven(v)
	if r == 0 {
		return 0
	}
	return r
}

// roundTenth rounds half to even on the first decimal.
func roundTenth(v float64) float64 {
	r := math.RoundToEven(v*10) / 10
	if r == 0 {
		return 0
	}
	return r
}
