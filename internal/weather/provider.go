package weather

import (
	"context"
)

// Provider abstracts a weather data source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
// FetchSeries returns the provider's forecast samples on a 3-hour grid,
// ascending, together with the location's fixed UTC offset.
type Provider interface {
	Name() string
	FetchCurrent(ctx context.Context, loc Location) (Current, error)
	FetchSeries(ctx context.Context, loc Location) (Series, error)
}

// Store is the contract the in-memory series cache must satisfy.
type Store interface {
	SaveSeries(loc Location, series Series)
	GetSeries(loc Location) (Series, error)
}
