package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Max-Zhenzhera/discord-weather-bot/internal/config"
	"github.com/Max-Zhenzhera/discord-weather-bot/internal/embed"
	"github.com/Max-Zhenzhera/discord-weather-bot/internal/model"
	"github.com/Max-Zhenzhera/discord-weather-bot/internal/openweather"
	"github.com/Max-Zhenzhera/discord-weather-bot/internal/service"
)

// Inbound is one chat message as the bot session delivers it.
type Inbound struct {
	Content   string
	ChannelID string
	AuthorID  string
}

// Reply is what a handled command produces: plain text, an embed, or both.
type Reply struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

// Dispatcher routes parsed commands to their handlers and converts
// failures into user-facing replies.
type Dispatcher struct {
	parser  *Parser
	weather service.WeatherServiceInterface
	units   model.Units
	logger  *zap.SugaredLogger
	help    string
	latency func() time.Duration
}

// NewDispatcher creates a new dispatcher instance. Without an explicit
// service it builds the default configuration-driven one.
func NewDispatcher(logger *zap.SugaredLogger, svc ...service.WeatherServiceInterface) *Dispatcher {
	var weatherService service.WeatherServiceInterface
	if len(svc) > 0 && svc[0] != nil {
		weatherService = svc[0]
	} else {
		weatherService = service.NewWeatherService()
	}

	prefix := config.GetCommandPrefix()
	return &Dispatcher{
		parser:  NewParser(prefix),
		weather: weatherService,
		units:   model.ParseUnits(config.GetWeatherUnits()),
		logger:  logger,
		help:    buildHelp(prefix, config.GetBotDescription()),
	}
}

// SetLatency injects the session heartbeat probe used by the ping command.
// It must be set before the session starts delivering messages.
func (d *Dispatcher) SetLatency(probe func() time.Duration) {
	d.latency = probe
}

// RecognizeMention forwards the bot's user ID to the parser so mentions
// work as a command prefix.
func (d *Dispatcher) RecognizeMention(userID string) {
	d.parser.RecognizeMention(userID)
}

// Dispatch handles one inbound message and returns the reply to send, or
// nil when the message is not addressed to the bot. Every message resolves
// to at most one handler.
func (d *Dispatcher) Dispatch(ctx context.Context, in Inbound) *Reply {
	cmd, err := d.parser.Parse(in.Content)
	switch {
	case errors.Is(err, ErrNotCommand):
		return nil
	case errors.Is(err, ErrUnknownCommand):
		d.logger.Infow("unknown command", "author", in.AuthorID, "error", err)
		return &Reply{Content: d.unknownCommandReply()}
	case errors.Is(err, ErrEmptyLocation):
		return &Reply{Content: d.emptyLocationReply()}
	case err != nil:
		d.logger.Errorw("parse message", "author", in.AuthorID, "error", err)
		return &Reply{Content: replyDeveloperError}
	}

	d.logger.Infow("handling command",
		"kind", cmd.Kind,
		"city", cmd.Location.City,
		"author", in.AuthorID,
	)
	return d.handle(ctx, cmd)
}

// handle runs the single handler matching the command kind.
func (d *Dispatcher) handle(ctx context.Context, cmd *model.Command) *Reply {
	switch cmd.Kind {
	case model.KindCurrent:
		return d.handleCurrent(ctx, cmd)
	case model.KindToday:
		return d.handleDayForecast(ctx, cmd, 0)
	case model.KindTomorrow:
		return d.handleDayForecast(ctx, cmd, 1)
	case model.KindOutlook:
		return d.handleOutlook(ctx, cmd)
	case model.KindPing:
		return d.handlePing()
	case model.KindEcho:
		return d.handleEcho(cmd)
	case model.KindHelp:
		return &Reply{Content: d.help}
	}

	d.logger.Errorw("no handler for command kind", "kind", cmd.Kind)
	return &Reply{Content: replyDeveloperError}
}

func (d *Dispatcher) handleCurrent(ctx context.Context, cmd *model.Command) *Reply {
	reading, err := d.weather.CurrentWeather(ctx, cmd.Location)
	if err != nil {
		return d.weatherErrorReply(err, cmd)
	}
	return &Reply{Embed: embed.CurrentWeather(reading, d.units)}
}

func (d *Dispatcher) handleDayForecast(ctx context.Context, cmd *model.Command, shift int) *Reply {
	forecast, err := d.weather.WeatherForecast(ctx, cmd.Location)
	if err != nil {
		return d.weatherErrorReply(err, cmd)
	}

	day, err := forecast.Day(shift)
	if err != nil {
		d.logger.Errorw("forecast day out of range",
			"shift", shift,
			"city", cmd.Location.City,
			"error", err,
		)
		return &Reply{Content: replyDeveloperError}
	}

	if shift == 0 {
		return &Reply{Embed: embed.TodayForecast(forecast, day, d.units)}
	}
	return &Reply{Embed: embed.TomorrowForecast(forecast, day, d.units)}
}

func (d *Dispatcher) handleOutlook(ctx context.Context, cmd *model.Command) *Reply {
	forecast, err := d.weather.WeatherForecast(ctx, cmd.Location)
	if err != nil {
		return d.weatherErrorReply(err, cmd)
	}
	return &Reply{Embed: embed.TemperatureOutlook(forecast, d.units)}
}

func (d *Dispatcher) handlePing() *Reply {
	if d.latency == nil {
		return &Reply{Content: "Pong!"}
	}
	return &Reply{Content: fmt.Sprintf("Pong! %dms", d.latency().Milliseconds())}
}

func (d *Dispatcher) handleEcho(cmd *model.Command) *Reply {
	if cmd.Args == "" {
		return &Reply{Content: d.emptyEchoReply()}
	}
	return &Reply{Content: cmd.Args}
}

// weatherErrorReply converts a weather client error into the user-facing
// reply. User-cause failures answer quietly; developer-cause and provider
// failures are also logged.
func (d *Dispatcher) weatherErrorReply(err error, cmd *model.Command) *Reply {
	switch {
	case errors.Is(err, openweather.ErrLocationNotFound):
		return &Reply{Content: replyLocationNotFound}
	case errors.Is(err, openweather.ErrTooManyRequests):
		d.logger.Errorw("provider quota exhausted", "command", cmd.Kind, "error", err)
		return &Reply{Content: replyTooManyRequests}
	case errors.Is(err, openweather.ErrProviderUnavailable):
		d.logger.Errorw("weather provider unavailable",
			"command", cmd.Kind,
			"city", cmd.Location.City,
			"error", err,
		)
		return &Reply{Content: replyProviderUnavailable}
	default:
		// Bad request, unauthorized and malformed responses are on us,
		// not on the user.
		d.logger.Errorw("weather command failed",
			"command", cmd.Kind,
			"city", cmd.Location.City,
			"error", err,
		)
		return &Reply{Content: replyDeveloperError}
	}
}
