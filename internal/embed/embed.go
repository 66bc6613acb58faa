// Package embed renders weather data into Discord message embeds. All
// builders are pure: the same input always yields the same embed, so they
// are trivial to assert on in tests.
package embed

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Max-Zhenzhera/discord-weather-bot/internal/model"
)

const authorName = "Your small weather helper :)"

// sectionDivider visually separates embed sections, the bot's signature
// dashed line.
var sectionDivider = strings.Repeat("- ", 40)

// field is one name/value cell inside an embed section.
type field struct {
	name  string
	value string
}

// CurrentWeather renders the current conditions reply.
func CurrentWeather(r *model.WeatherReading, units model.Units) *discordgo.MessageEmbed {
	e := newEmbed(
		fmt.Sprintf("Current weather in %s", r.City),
		"Here is the weather right now.",
	)
	if r.IconURL != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: r.IconURL}
	}

	addSection(e, "Shortly",
		field{"Status", r.Condition},
		field{"Description", r.Description},
	)
	addSection(e, "Temperature",
		field{"Now", temperature(r.Temperature, units)},
		field{"Feels like", temperature(r.FeelsLike, units)},
		field{"Min / Max", "Min: " + temperature(r.TempMin, units) + "\nMax: " + temperature(r.TempMax, units)},
	)
	addSection(e, "Sunrise & sunset",
		field{"Sunrise at [GMT]", r.Sunrise.UTC().Format("15:04:05")},
		field{"Sunset at [GMT]", r.Sunset.UTC().Format("15:04:05")},
	)
	addSection(e, "Other stats",
		field{"Pressure", fmt.Sprintf("%.0f %s", r.Pressure, model.PressureSymbol)},
		field{"Humidity", fmt.Sprintf("%.0f %s", r.Humidity, model.HumiditySymbol)},
		field{"Wind speed", fmt.Sprintf("%.1f %s", r.WindSpeed, units.WindSpeedSymbol())},
		field{"Clouds", fmt.Sprintf("%.0f %s", r.Clouds, model.CloudsSymbol)},
	)
	addCityInfo(e, r.City, r.Country, r.TimezoneOffset)

	e.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Data computed at %s [GMT]", r.ObservedAt.UTC().Format("2006-01-02 15:04:05")),
	}
	return e
}

// TodayForecast renders the detailed forecast for the first forecast day.
func TodayForecast(f *model.Forecast, day model.DayForecast, units model.Units) *discordgo.MessageEmbed {
	return dayForecast(
		fmt.Sprintf("Today's weather forecast in %s", f.City),
		"Detailed weather forecast for today.",
		f, day, units,
	)
}

// TomorrowForecast renders the detailed forecast for the second forecast
// day.
func TomorrowForecast(f *model.Forecast, day model.DayForecast, units model.Units) *discordgo.MessageEmbed {
	return dayForecast(
		fmt.Sprintf("Tomorrow's weather forecast in %s", f.City),
		"Detailed weather forecast for tomorrow.",
		f, day, units,
	)
}

// TemperatureOutlook renders the multi-day temperature forecast: one
// min/max section per forecast day.
func TemperatureOutlook(f *model.Forecast, units model.Units) *discordgo.MessageEmbed {
	e := newEmbed(
		fmt.Sprintf("Temperature forecast in %s", f.City),
		"Short temperature forecast for the next days.",
	)
	for _, day := range f.Days() {
		addSection(e, fmt.Sprintf("Temperature by %s", day.Date.Format("2006-01-02")),
			field{"Min", temperature(day.MinTemperature(), units)},
			field{"Max", temperature(day.MaxTemperature(), units)},
		)
	}
	addCityInfo(e, f.City, f.Country, f.TimezoneOffset)
	return e
}

// dayForecast renders one section per 3-hour period of the day.
func dayForecast(title, description string, f *model.Forecast, day model.DayForecast, units model.Units) *discordgo.MessageEmbed {
	e := newEmbed(title, description)
	for _, entry := range day.Entries {
		addCompactSection(e,
			fmt.Sprintf("By %s [GMT]", entry.At.UTC().Format("15:04:05")),
			strings.Join([]string{
				"Status: " + entry.Condition,
				"Temperature: " + temperature(entry.Temperature, units),
				"Feels like: " + temperature(entry.FeelsLike, units),
				fmt.Sprintf("Humidity: %.0f %s", entry.Humidity, model.HumiditySymbol),
				fmt.Sprintf("Clouds: %.0f %s", entry.Clouds, model.CloudsSymbol),
				fmt.Sprintf("Pressure: %.0f %s", entry.Pressure, model.PressureSymbol),
				fmt.Sprintf("Wind speed: %.1f %s", entry.WindSpeed, units.WindSpeedSymbol()),
			}, "\n"),
		)
	}
	addCityInfo(e, f.City, f.Country, f.TimezoneOffset)
	return e
}

func newEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Author:      &discordgo.MessageEmbedAuthor{Name: authorName},
	}
}

// addSection appends a divider header followed by inline fields. Fields
// with empty values are skipped; Discord rejects them.
func addSection(e *discordgo.MessageEmbed, header string, fields ...field) {
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
		Name:  header,
		Value: sectionDivider,
	})
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   f.name,
			Value:  f.value,
			Inline: true,
		})
	}
}

// addCompactSection appends one full-width field carrying the divider and
// the section content together, keeping period sections within the embed
// field limit.
func addCompactSection(e *discordgo.MessageEmbed, header, content string) {
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
		Name:  header,
		Value: sectionDivider + "\n" + content,
	})
}

func addCityInfo(e *discordgo.MessageEmbed, city, country string, offset time.Duration) {
	addSection(e, "City info",
		field{"City name", city},
		field{"Country code", country},
		field{"Timezone", fmt.Sprintf("UTC%+.1f", offset.Hours())},
	)
}

// temperature formats a temperature with an explicit sign, e.g. "+15.0 °C".
func temperature(v float64, units model.Units) string {
	return fmt.Sprintf("%+.1f %s", v, units.TemperatureSymbol())
}
