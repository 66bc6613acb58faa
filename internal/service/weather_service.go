package service

import (
	"context"
	"net/http"

	"github.com/Max-Zhenzhera/discord-weather-bot/internal/config"
	"github.com/Max-Zhenzhera/discord-weather-bot/internal/model"
	"github.com/Max-Zhenzhera/discord-weather-bot/internal/openweather"
)

// WeatherServiceInterface defines weather data access for command handlers.
type WeatherServiceInterface interface {
	// CurrentWeather returns the current weather for the location.
	CurrentWeather(ctx context.Context, loc model.Location) (*model.WeatherReading, error)
	// WeatherForecast returns the 5-day forecast for the location.
	WeatherForecast(ctx context.Context, loc model.Location) (*model.Forecast, error)
}

// WeatherService implements WeatherServiceInterface on top of the
// OpenWeatherMap client.
type WeatherService struct {
	Client openweather.WeatherClient
}

// NewWeatherService creates a new weather service instance. Without an
// explicit client it builds the default OpenWeatherMap client from
// configuration.
func NewWeatherService(client ...openweather.WeatherClient) *WeatherService {
	var weatherClient openweather.WeatherClient
	if len(client) > 0 && client[0] != nil {
		weatherClient = client[0]
	} else {
		weatherClient = openweather.NewWeatherClient(
			config.GetWeatherAPIToken(),
			config.GetWeatherAPIURL(),
			model.ParseUnits(config.GetWeatherUnits()),
			&http.Client{Timeout: config.GetWeatherTimeout()},
		)
	}
	return &WeatherService{
		Client: weatherClient,
	}
}

// CurrentWeather fetches the current weather through the provider client.
func (s *WeatherService) CurrentWeather(ctx context.Context, loc model.Location) (*model.WeatherReading, error) {
	return s.Client.CurrentWeather(ctx, loc)
}

// WeatherForecast fetches the 5-day forecast through the provider client.
func (s *WeatherService) WeatherForecast(ctx context.Context, loc model.Location) (*model.Forecast, error) {
	return s.Client.WeatherForecast(ctx, loc)
}
