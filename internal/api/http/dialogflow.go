package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/weather-webhook/internal/weather"
)

// dialogflowRequest is the subset of a Dialogflow ES fulfillment request we read.
type dialogflowRequest struct {
	QueryResult *queryResult `json:"queryResult"`
}

type queryResult struct {
	Parameters map[string]any `json:"parameters"`
	Intent     *struct {
		DisplayName string `json:"displayName"`
	} `json:"intent"`
}

type dialogflowResponse struct {
	FulfillmentText string `json:"fulfillmentText"`
}

// chatQuery is the typed form of the webhook parameters. A nil Date asks
// for current conditions.
type chatQuery struct {
	City string
	Date *weather.Date
}

// toQuery converts the untyped parameter bag at the edge.
func (q *queryResult) toQuery() chatQuery {
	var out chatQuery
	if q == nil || q.Parameters == nil {
		return out
	}
	out.City = strings.TrimSpace(paramString(q.Parameters["city"]))

	raw := q.Parameters["date"]
	// A date-period parameter carries its start date.
	if period, ok := raw.(map[string]any); ok {
		raw = period["startDate"]
	}
	if d, ok := parseChatDate(paramString(raw)); ok {
		out.Date = &d
	}
	return out
}

func paramString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		if len(t) == 0 {
			return ""
		}
		return paramString(t[0])
	default:
		return fmt.Sprint(t)
	}
}

var chatDateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// parseChatDate accepts the date shapes Dialogflow and users send. For
// timestamps the civil date is taken in the timestamp's own offset.
func parseChatDate(s string) (weather.Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return weather.Date{}, false
	}
	for _, layout := range chatDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return weather.NewDate(t.Year(), t.Month(), t.Day()), true
		}
	}
	return weather.Date{}, false
}
