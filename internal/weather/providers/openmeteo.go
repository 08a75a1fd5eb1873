package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-webhook/internal/weather"
)

const openMeteoVars = "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m"

type coordinates struct {
	lat, lon float64
}

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// Open-Meteo needs coordinates, so cities are resolved through Google geocoding.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	days    int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker

	geocode func(ctx context.Context, loc weather.Location) (coordinates, error)
	coords  sync.Map // location key -> coordinates
}

// NewOpenMeteoProvider builds the provider. opts.APIKey is the Google
// geocoding key; Open-Meteo itself is keyless.
func NewOpenMeteoProvider(opts Options) *OpenMeteoProvider {
	geocoder.ApiKey = opts.APIKey

	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		days:    7,
		httpCfg: newHTTPConfig(opts),
		circuit: newBreaker("openmeteo"),
		geocode: googleGeocode,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func googleGeocode(ctx context.Context, loc weather.Location) (coordinates, error) {
	type result struct {
		loc geocoder.Location
		err error
	}
	ch := make(chan result, 1)
	go func() {
		l, err := geocoder.Geocoding(geocoder.Address{City: loc.City, Country: loc.Country})
		ch <- result{loc: l, err: err}
	}()

	select {
	case <-ctx.Done():
		return coordinates{}, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return coordinates{}, fmt.Errorf("geocode %q: %w", loc.Query(), r.err)
		}
		return coordinates{lat: r.loc.Latitude, lon: r.loc.Longitude}, nil
	}
}

func (p *OpenMeteoProvider) resolve(ctx context.Context, loc weather.Location) (coordinates, error) {
	if c, ok := p.coords.Load(loc.Key()); ok {
		return c.(coordinates), nil
	}
	c, err := p.geocode(ctx, loc)
	if err != nil {
		return coordinates{}, err
	}
	p.coords.Store(loc.Key(), c)
	return c, nil
}

type omCurrent struct {
	Time        int64    `json:"time"`
	Temperature *float64 `json:"temperature_2m"`
	Humidity    *float64 `json:"relative_humidity_2m"`
	Apparent    *float64 `json:"apparent_temperature"`
	WeatherCode *int     `json:"weather_code"`
	WindSpeed   *float64 `json:"wind_speed_10m"`
}

type omHourly struct {
	Time        []int64    `json:"time"`
	Temperature []*float64 `json:"temperature_2m"`
	Humidity    []*float64 `json:"relative_humidity_2m"`
	Apparent    []*float64 `json:"apparent_temperature"`
	WeatherCode []*int     `json:"weather_code"`
	WindSpeed   []*float64 `json:"wind_speed_10m"`
}

func (p *OpenMeteoProvider) FetchCurrent(ctx context.Context, loc weather.Location) (weather.Current, error) {
	var payload struct {
		Current *omCurrent `json:"current"`
	}
	if err := p.get(ctx, loc, "current", &payload); err != nil {
		return weather.Current{}, err
	}
	c := payload.Current
	if c == nil || c.Temperature == nil {
		return weather.Current{}, fmt.Errorf("openmeteo current response has no temperature")
	}

	s := weather.Sample{
		Time:        time.Unix(c.Time, 0).UTC(),
		Temperature: *c.Temperature,
		FeelsLike:   valueOr(c.Apparent, *c.Temperature),
		HumidityPct: int(valueOr(c.Humidity, 0)),
		WindSpeedMS: valueOr(c.WindSpeed, 0),
	}
	if c.WeatherCode != nil {
		s.Description = describeWMOCode(*c.WeatherCode)
	}
	return weather.Current{Location: loc.City, Sample: s}, nil
}

func (p *OpenMeteoProvider) FetchSeries(ctx context.Context, loc weather.Location) (weather.Series, error) {
	var payload struct {
		UTCOffsetSeconds int      `json:"utc_offset_seconds"`
		Hourly           omHourly `json:"hourly"`
	}
	if err := p.get(ctx, loc, "hourly", &payload); err != nil {
		return weather.Series{}, err
	}

	h := payload.Hourly
	series := weather.Series{Location: loc.City, TZOffsetSeconds: payload.UTCOffsetSeconds}
	for i, ts := range h.Time {
		temp := at(h.Temperature, i)
		if temp == nil {
			continue
		}
		s := weather.Sample{
			Time:        time.Unix(ts, 0).UTC(),
			Temperature: *temp,
			FeelsLike:   valueOr(at(h.Apparent, i), *temp),
			HumidityPct: int(valueOr(at(h.Humidity, i), 0)),
			WindSpeedMS: valueOr(at(h.WindSpeed, i), 0),
		}
		if code := at(h.WeatherCode, i); code != nil {
			s.Description = describeWMOCode(*code)
		}
		series.Samples = append(series.Samples, s)
	}
	series.Samples = thinToCadence(sortSamples(series.Samples))
	return series, nil
}

func (p *OpenMeteoProvider) get(ctx context.Context, loc weather.Location, block string, out any) error {
	coords, err := p.resolve(ctx, loc)
	if err != nil {
		return err
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", coords.lat))
		values.Set("longitude", fmt.Sprintf("%f", coords.lon))
		values.Set(block, openMeteoVars)
		values.Set("wind_speed_unit", "ms")
		values.Set("timeformat", "unixtime")
		values.Set("timezone", "auto")
		values.Set("forecast_days", strconv.Itoa(p.days))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode openmeteo %s: %w", block, err)
	}
	return nil
}

func at[T any](values []*T, i int) *T {
	if i < 0 || i >= len(values) {
		return nil
	}
	return values[i]
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// describeWMOCode turns a WMO weather interpretation code into a label in
// the style of the other providers.
func describeWMOCode(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code == 1:
		return "mainly clear"
	case code == 2:
		return "partly cloudy"
	case code == 3:
		return "overcast clouds"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain showers"
	case code == 85 || code == 86:
		return "snow showers"
	case code >= 95:
		return "thunderstorm"
	default:
		return ""
	}
}
