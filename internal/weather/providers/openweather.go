package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/weather-webhook/internal/weather"
	"github.com/sony/gobreaker"
)

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
// Its 5 day / 3 hour forecast is already on the grid the engine extends.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(opts Options) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  opts.APIKey,
		baseURL: "https://api.openweathermap.org/data/2.5",
		httpCfg: newHTTPConfig(opts),
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type owmMain struct {
	Temp      float64  `json:"temp"`
	FeelsLike float64  `json:"feels_like"`
	TempMin   *float64 `json:"temp_min"`
	TempMax   *float64 `json:"temp_max"`
	Humidity  float64  `json:"humidity"`
}

type owmDescription struct {
	Description string `json:"description"`
}

type owmWind struct {
	Speed float64 `json:"speed"`
}

type owmItem struct {
	Dt      int64            `json:"dt"`
	Main    *owmMain         `json:"main"`
	Weather []owmDescription `json:"weather"`
	Wind    *owmWind         `json:"wind"`
}

// sample converts an item, defaulting absent fields. ok is false when the
// item carried no main block at all.
func (i owmItem) sample() (s weather.Sample, ok bool) {
	s.Time = time.Unix(i.Dt, 0).UTC()
	if i.Main != nil {
		s.Temperature = i.Main.Temp
		s.FeelsLike = i.Main.FeelsLike
		s.TempMin = i.Main.TempMin
		s.TempMax = i.Main.TempMax
		s.HumidityPct = int(i.Main.Humidity)
	}
	if i.Wind != nil {
		s.WindSpeedMS = i.Wind.Speed
	}
	if len(i.Weather) > 0 {
		s.Description = i.Weather[0].Description
	}
	return s, i.Main != nil
}

func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, loc weather.Location) (weather.Current, error) {
	var payload struct {
		owmItem
		Name string `json:"name"`
	}
	if err := p.get(ctx, "weather", loc, &payload); err != nil {
		return weather.Current{}, err
	}

	s, ok := payload.sample()
	if !ok {
		return weather.Current{}, fmt.Errorf("openweather current response has no main block")
	}
	if payload.Dt == 0 {
		s.Time = time.Now().UTC()
	}
	return weather.Current{Location: payload.Name, Sample: s}, nil
}

func (p *OpenWeatherProvider) FetchSeries(ctx context.Context, loc weather.Location) (weather.Series, error) {
	var payload struct {
		List []owmItem `json:"list"`
		City *struct {
			Name     string `json:"name"`
			Timezone int    `json:"timezone"`
		} `json:"city"`
	}
	if err := p.get(ctx, "forecast", loc, &payload); err != nil {
		return weather.Series{}, err
	}

	series := weather.Series{Location: loc.City}
	if payload.City != nil {
		series.TZOffsetSeconds = payload.City.Timezone
		if payload.City.Name != "" {
			series.Location = payload.City.Name
		}
	}
	series.Samples = make([]weather.Sample, 0, len(payload.List))
	for _, item := range payload.List {
		s, _ := item.sample()
		series.Samples = append(series.Samples, s)
	}
	series.Samples = sortSamples(series.Samples)
	return series, nil
}

func (p *OpenWeatherProvider) get(ctx context.Context, endpoint string, loc weather.Location, out any) error {
	if p.apiKey == "" {
		return fmt.Errorf("openweather: %w", errMissingAPIKey)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("q", loc.Query())

		u := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode openweather %s: %w", endpoint, err)
	}
	return nil
}
