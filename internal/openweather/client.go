package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Max-Zhenzhera/discord-weather-bot/internal/model"
)

// DefaultBaseURL is the OpenWeatherMap API root the client talks to when
// no other URL is configured.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

const (
	defaultTimeout = 10 * time.Second

	iconBaseURL   = "https://openweathermap.org/themes/openweathermap/assets/vendor/owm/img/widgets/"
	iconExtension = ".png"
)

// WeatherClient defines the interface for OpenWeatherMap data access.
type WeatherClient interface {
	// CurrentWeather fetches the current weather for the location.
	CurrentWeather(ctx context.Context, loc model.Location) (*model.WeatherReading, error)
	// WeatherForecast fetches the 5-day/3-hour forecast for the location.
	WeatherForecast(ctx context.Context, loc model.Location) (*model.Forecast, error)
}

// weatherClient implements WeatherClient over plain HTTP.
type weatherClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	units      model.Units
}

// NewWeatherClient creates a new OpenWeatherMap client. baseURL falls back
// to DefaultBaseURL when empty; the optional httpClient replaces the
// default 10-second-timeout one.
func NewWeatherClient(apiKey, baseURL string, units model.Units, httpClient ...*http.Client) WeatherClient {
	client := &http.Client{Timeout: defaultTimeout}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &weatherClient{
		httpClient: client,
		apiKey:     apiKey,
		baseURL:    baseURL,
		units:      units,
	}
}

// CurrentWeather fetches and validates the current weather document.
func (c *weatherClient) CurrentWeather(ctx context.Context, loc model.Location) (*model.WeatherReading, error) {
	var payload currentResponse
	if err := c.getJSON(ctx, "/weather", loc, &payload); err != nil {
		return nil, err
	}
	if payload.Name == "" || len(payload.Weather) == 0 {
		return nil, fmt.Errorf("%w: current weather document lacks name or weather fields", ErrMalformedResponse)
	}

	reading := readingFromCurrent(payload)
	return &reading, nil
}

// WeatherForecast fetches and validates the 5-day forecast document.
func (c *weatherClient) WeatherForecast(ctx context.Context, loc model.Location) (*model.Forecast, error) {
	var payload forecastResponse
	if err := c.getJSON(ctx, "/forecast", loc, &payload); err != nil {
		return nil, err
	}
	if payload.City.Name == "" || len(payload.List) == 0 {
		return nil, fmt.Errorf("%w: forecast document lacks city or list fields", ErrMalformedResponse)
	}

	forecast := forecastFromPayload(payload)
	return &forecast, nil
}

// getJSON performs one GET against the provider and decodes the 200 body
// into out. Every call is a single attempt; the bot asks the user to retry
// instead of retrying itself.
func (c *weatherClient) getJSON(ctx context.Context, path string, loc model.Location, out any) error {
	params := url.Values{}
	params.Set("q", loc.Query())
	params.Set("appid", c.apiKey)
	params.Set("units", string(c.units))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("openweather: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errorFromStatus(resp.StatusCode, resp.Body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// readingFromCurrent maps the current weather document into the model.
func readingFromCurrent(p currentResponse) model.WeatherReading {
	w := p.Weather[0]
	return model.WeatherReading{
		City:           p.Name,
		Country:        p.Sys.Country,
		ObservedAt:     time.Unix(p.Dt, 0).UTC(),
		Temperature:    p.Main.Temp,
		FeelsLike:      p.Main.FeelsLike,
		TempMin:        p.Main.TempMin,
		TempMax:        p.Main.TempMax,
		Condition:      w.Main,
		Description:    capitalize(w.Description),
		Pressure:       p.Main.Pressure,
		Humidity:       p.Main.Humidity,
		WindSpeed:      p.Wind.Speed,
		Clouds:         p.Clouds.All,
		IconURL:        iconURL(w.Icon),
		Sunrise:        time.Unix(p.Sys.Sunrise, 0).UTC(),
		Sunset:         time.Unix(p.Sys.Sunset, 0).UTC(),
		TimezoneOffset: time.Duration(p.Timezone) * time.Second,
	}
}

// forecastFromPayload maps the forecast document into the model. Periods
// without a weather block keep empty condition fields.
func forecastFromPayload(p forecastResponse) model.Forecast {
	entries := make([]model.ForecastEntry, 0, len(p.List))
	for _, period := range p.List {
		e := model.ForecastEntry{
			At:          time.Unix(period.Dt, 0).UTC(),
			Temperature: period.Main.Temp,
			FeelsLike:   period.Main.FeelsLike,
			TempMin:     period.Main.TempMin,
			TempMax:     period.Main.TempMax,
			Pressure:    period.Main.Pressure,
			Humidity:    period.Main.Humidity,
			WindSpeed:   period.Wind.Speed,
			Clouds:      period.Clouds.All,
		}
		if len(period.Weather) > 0 {
			w := period.Weather[0]
			e.Condition = w.Main
			e.Description = capitalize(w.Description)
			e.IconURL = iconURL(w.Icon)
		}
		entries = append(entries, e)
	}
	return model.Forecast{
		City:           p.City.Name,
		Country:        p.City.Country,
		Sunrise:        time.Unix(p.City.Sunrise, 0).UTC(),
		Sunset:         time.Unix(p.City.Sunset, 0).UTC(),
		TimezoneOffset: time.Duration(p.City.Timezone) * time.Second,
		Entries:        entries,
	}
}

// iconURL builds the widget image URL for a provider icon code.
func iconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return iconBaseURL + icon + iconExtension
}

// capitalize upper-cases the first rune of the provider's lower-case
// condition descriptions.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
