package weather

import (
	"strings"
	"time"

	"github.com/i474232898/weather-webhook/internal/common"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// ClassifyDescription maps a free-text provider label onto a Condition.
func ClassifyDescription(desc string) Condition {
	text := strings.ToLower(desc)
	switch {
	case text == "" || text == noDataDescription:
		return ConditionUnknown
	case common.HasAny(text, "thunder", "storm"):
		return ConditionStorm
	case common.HasAny(text, "snow", "sleet", "blizzard"):
		return ConditionSnow
	case common.HasAny(text, "rain", "shower", "drizzle"):
		return ConditionRain
	case common.HasAny(text, "mist", "fog", "haze", "smoke"):
		return ConditionMist
	case common.HasAny(text, "cloud", "overcast"):
		return ConditionCloudy
	case common.HasAny(text, "clear", "sunny", "sun"):
		return ConditionClear
	default:
		return ConditionUnknown
	}
}

// Location identifies the place a query is about.
// City is required; Country narrows ambiguous names.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return strings.ToLower(strings.TrimSpace(l.City)) + ":" + strings.ToLower(strings.TrimSpace(l.Country))
}

// Query returns the "city,country" form understood by the providers.
func (l Location) Query() string {
	if l.Country == "" {
		return l.City
	}
	return l.City + "," + l.Country
}

// Sample is one provider measurement. TempMin and TempMax are optional;
// when absent they fall back to Temperature.
type Sample struct {
	Time        time.Time `json:"timestamp"`
	Temperature float64   `json:"temperatureC"`
	FeelsLike   float64   `json:"feelsLikeC"`
	TempMin     *float64  `json:"tempMinC,omitempty"`
	TempMax     *float64  `json:"tempMaxC,omitempty"`
	HumidityPct int       `json:"humidityPercent"`
	WindSpeedMS float64   `json:"windSpeed"`
	Description string    `json:"description,omitempty"`

	// Synthetic marks samples appended by Extend.
	Synthetic bool `json:"synthetic,omitempty"`
}

// Low is the sample's lower temperature bound.
func (s Sample) Low() float64 {
	if s.TempMin != nil {
		return *s.TempMin
	}
	return s.Temperature
}

// High is the sample's upper temperature bound.
func (s Sample) High() float64 {
	if s.TempMax != nil {
		return *s.TempMax
	}
	return s.Temperature
}

// Series is the ordered provider time series for one location.
// Samples are ascending by Time with no duplicate timestamps.
type Series struct {
	Location        string
	TZOffsetSeconds int
	Samples         []Sample
}

// Current is the latest observed conditions for a location.
type Current struct {
	Location string `json:"location"`
	Sample
}

// DaySummary is the single-line digest of one local day. High and Low are
// rounded to whole degrees. NoData marks a gap inside an answered range.
type DaySummary struct {
	Date        Date      `json:"date"`
	High        float64   `json:"highC"`
	Low         float64   `json:"lowC"`
	AvgHumidity int       `json:"avgHumidityPercent"`
	Description string    `json:"description"`
	Condition   Condition `json:"condition"`
	Estimated   bool      `json:"estimated"`
	NoData      bool      `json:"noData,omitempty"`
}

// WindowStatus describes how a requested window relates to the available coverage.
type WindowStatus string

const (
	WindowInRange    WindowStatus = "in_range"
	WindowClipped    WindowStatus = "clipped"
	WindowOutOfRange WindowStatus = "out_of_range"
	WindowNoData     WindowStatus = "no_data"
)

// RequestWindow is the answered [Start, End] range next to the requested one.
// AvailableFrom/AvailableTo are the servable bounds and are meaningful unless
// Status is WindowNoData.
type RequestWindow struct {
	RequestedStart Date         `json:"requestedStart"`
	RequestedEnd   Date         `json:"requestedEnd"`
	Start          Date         `json:"start"`
	End            Date         `json:"end"`
	AvailableFrom  Date         `json:"availableFrom"`
	AvailableTo    Date         `json:"availableTo"`
	Status         WindowStatus `json:"status"`
}

// Answerable reports whether the window carries day summaries.
func (w RequestWindow) Answerable() bool {
	return w.Status == WindowInRange || w.Status == WindowClipped
}

// Outlook is the engine's result for a multi-day request.
type Outlook struct {
	Location string        `json:"location"`
	Window   RequestWindow `json:"window"`
	Days     []DaySummary  `json:"days"`
}
