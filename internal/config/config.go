package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/i474232898/weather-webhook/internal/common"
	"github.com/i474232898/weather-webhook/internal/weather"
)

var errNoProviderKey = errors.New("at least one of OPENWEATHER_API_KEY, WEATHERAPI_API_KEY or GEOCODER_API_KEY is required")

type AppConfig struct {
	Port      string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`

	OpenWeatherAPIKey string `envconfig:"OPENWEATHER_API_KEY"`
	WeatherAPIKey     string `envconfig:"WEATHERAPI_API_KEY"`
	// GeocoderAPIKey enables the Open-Meteo provider through Google geocoding.
	GeocoderAPIKey string `envconfig:"GEOCODER_API_KEY"`

	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`
	ProviderRPS   float64       `envconfig:"PROVIDER_RPS" default:"1" validate:"gte=0"`
	ProviderBurst int           `envconfig:"PROVIDER_BURST" default:"5" validate:"gte=1"`

	// Series cache; CacheTTL 0 disables it so every request hits a provider.
	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"0s" validate:"gte=0"`
	CacheMaxEntries int           `envconfig:"CACHE_MAX_ENTRIES" default:"256" validate:"gte=0"`

	// RefreshInterval controls how often WarmLocations are re-fetched.
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"15m" validate:"gte=1m"`
	// WarmCities is the raw "City[,CC];City[,CC]" list behind WarmLocations.
	// Entries with a country also warm the bare city used by chat requests.
	WarmCities    string             `envconfig:"WARM_CITIES"`
	WarmLocations []weather.Location `ignored:"true"`

	// OutlookDays is the inclusive length of a forecast window.
	OutlookDays int `envconfig:"OUTLOOK_DAYS" default:"8" validate:"min=1,max=16"`
}

var validate = validator.New()

// Load reads configuration from the environment (and a .env file when present)
// with sensible defaults, then validates it.
func Load() (*AppConfig, error) {
	// A missing .env file is normal outside local development.
	// Existing environment variables win over the file.
	_ = godotenv.Load()

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment configuration: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	var err error
	cfg.WarmLocations, err = parseLocations(cfg.WarmCities)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints and that some provider is usable.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.OpenWeatherAPIKey == "" && c.WeatherAPIKey == "" && c.GeocoderAPIKey == "" {
		return errNoProviderKey
	}
	return nil
}

// parseLocations reads "City[,CC];City[,CC]" lists.
func parseLocations(raw string) ([]weather.Location, error) {
	var locs []weather.Location
	for _, item := range common.SplitList(raw, ";") {
		parts := common.SplitList(item, ",")
		switch len(parts) {
		case 1:
			locs = append(locs, weather.Location{City: parts[0]})
		case 2:
			locs = append(locs, weather.Location{City: parts[0], Country: parts[1]})
		default:
			return nil, fmt.Errorf("invalid WARM_CITIES entry %q: want City or City,Country", item)
		}
	}
	return locs, nil
}
