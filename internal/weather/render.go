package weather

import (
	"fmt"
	"strings"
)

// RenderCurrent formats current conditions as a single chat line.
func RenderCurrent(city string, c Current) string {
	name := firstNonEmpty(c.Location, city)
	desc := firstNonEmpty(c.Description, noDataDescription)
	return fmt.Sprintf("Current weather in %s: %s°C, %s. Feels like %s°C. Humidity %d%% and wind %s m/s.",
		name, whole(c.Temperature), desc, whole(c.FeelsLike), c.HumidityPct, whole(c.WindSpeedMS))
}

// RenderOutlook formats an answerable outlook, one line per day.
// days is the configured outlook length used in the header.
func RenderOutlook(city string, days int, o Outlook) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d-day forecast for %s from %s to %s:\n",
		days, firstNonEmpty(o.Location, city), o.Window.Start, o.Window.End)
	for _, d := range o.Days {
		if d.NoData {
			fmt.Fprintf(&sb, "%s: (no data)\n", d.Date)
			continue
		}
		fmt.Fprintf(&sb, "%s: %s, high %s°C, low %s°C, avg humidity %d%%.\n",
			d.Date, d.Description, whole(d.High), whole(d.Low), d.AvgHumidity)
	}
	return sb.String()
}

// RenderOutOfRange explains the servable range when the request misses it.
func RenderOutOfRange(city string, days int, w RequestWindow) string {
	return fmt.Sprintf("I can provide %s %d-day forecast for %s between %s and %s. "+
		"Your requested window (%s to %s) is outside this range.",
		article(days), days, city, w.AvailableFrom, w.AvailableTo, w.RequestedStart, w.RequestedEnd)
}

// article picks "a" or "an" for a spoken number of days.
func article(n int) string {
	switch n {
	case 8, 11, 18:
		return "an"
	}
	return "a"
}

func whole(v float64) string {
	return fmt.Sprintf("%.0f", roundWhole(v))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
