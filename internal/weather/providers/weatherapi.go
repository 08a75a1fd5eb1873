package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/weather-webhook/internal/weather"
	"github.com/sony/gobreaker"
)

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
// Its hourly forecast is thinned to the 3-hour cadence.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	days    int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(opts Options) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  opts.APIKey,
		baseURL: "https://api.weatherapi.com/v1",
		// Free plans are capped at 3 forecast days.
		days:    3,
		httpCfg: newHTTPConfig(opts),
		circuit: newBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type wapiLocation struct {
	Name           string `json:"name"`
	LocaltimeEpoch int64  `json:"localtime_epoch"`
	Localtime      string `json:"localtime"`
}

type wapiCondition struct {
	Text string `json:"text"`
}

type wapiReading struct {
	Epoch      int64          `json:"time_epoch"`
	Updated    int64          `json:"last_updated_epoch"`
	TempC      float64        `json:"temp_c"`
	FeelsLikeC *float64       `json:"feelslike_c"`
	Humidity   float64        `json:"humidity"`
	WindKph    float64        `json:"wind_kph"`
	Condition  *wapiCondition `json:"condition"`
}

func (r wapiReading) sample(epoch int64) weather.Sample {
	s := weather.Sample{
		Time:        time.Unix(epoch, 0).UTC(),
		Temperature: r.TempC,
		FeelsLike:   r.TempC,
		HumidityPct: int(r.Humidity),
		// Convert wind from kph to m/s.
		WindSpeedMS: r.WindKph / 3.6,
	}
	if r.FeelsLikeC != nil {
		s.FeelsLike = *r.FeelsLikeC
	}
	if r.Condition != nil {
		s.Description = r.Condition.Text
	}
	return s
}

func (p *WeatherAPIProvider) FetchCurrent(ctx context.Context, loc weather.Location) (weather.Current, error) {
	var payload struct {
		Location wapiLocation `json:"location"`
		Current  *wapiReading `json:"current"`
	}
	if err := p.get(ctx, "current.json", loc, nil, &payload); err != nil {
		return weather.Current{}, err
	}
	if payload.Current == nil {
		return weather.Current{}, fmt.Errorf("weatherapi current response has no current block")
	}

	epoch := payload.Current.Updated
	if epoch == 0 {
		epoch = time.Now().Unix()
	}
	return weather.Current{
		Location: payload.Location.Name,
		Sample:   payload.Current.sample(epoch),
	}, nil
}

func (p *WeatherAPIProvider) FetchSeries(ctx context.Context, loc weather.Location) (weather.Series, error) {
	var payload struct {
		Location wapiLocation `json:"location"`
		Forecast struct {
			ForecastDay []struct {
				Hour []wapiReading `json:"hour"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}
	extra := url.Values{}
	extra.Set("days", strconv.Itoa(p.days))
	extra.Set("aqi", "no")
	extra.Set("alerts", "no")
	if err := p.get(ctx, "forecast.json", loc, extra, &payload); err != nil {
		return weather.Series{}, err
	}

	series := weather.Series{
		Location:        payload.Location.Name,
		TZOffsetSeconds: wapiOffset(payload.Location),
	}
	if series.Location == "" {
		series.Location = loc.City
	}
	for _, day := range payload.Forecast.ForecastDay {
		for _, h := range day.Hour {
			series.Samples = append(series.Samples, h.sample(h.Epoch))
		}
	}
	series.Samples = thinToCadence(sortSamples(series.Samples))
	return series, nil
}

// wapiOffset derives the UTC offset from the location's wall clock and epoch,
// rounded to the nearest quarter hour.
func wapiOffset(l wapiLocation) int {
	wall, err := time.Parse("2006-01-02 15:04", l.Localtime)
	if err != nil || l.LocaltimeEpoch == 0 {
		return 0
	}
	diff := float64(wall.Unix() - l.LocaltimeEpoch)
	return int(math.Round(diff/900) * 900)
}

func (p *WeatherAPIProvider) get(ctx context.Context, endpoint string, loc weather.Location, extra url.Values, out any) error {
	if p.apiKey == "" {
		return fmt.Errorf("weatherapi: %w", errMissingAPIKey)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		// WeatherAPI uses "q" for location; it accepts "city,country" or "lat,lon".
		values.Set("q", loc.Query())
		for k, v := range extra {
			values[k] = v
		}

		u := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode weatherapi %s: %w", endpoint, err)
	}
	return nil
}
