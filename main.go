package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Max-Zhenzhera/discord-weather-bot/internal/bot"
	"github.com/Max-Zhenzhera/discord-weather-bot/internal/config"
	"github.com/Max-Zhenzhera/discord-weather-bot/internal/handler"
	"github.com/Max-Zhenzhera/discord-weather-bot/internal/logging"
)

func main() {
	maxSizeMB, maxBackups, maxAgeDays := config.GetLogRotation()
	logger := logging.New(logging.Options{
		FilePath:   config.GetLogFilePath(),
		MaxSizeMB:  maxSizeMB,
		MaxBackups: maxBackups,
		MaxAgeDays: maxAgeDays,
	})
	defer func() { _ = logger.Sync() }()

	if err := config.Validate(); err != nil {
		logger.Fatalw("missing configuration", "error", err)
	}

	dispatcher := handler.NewDispatcher(logger)
	weatherBot, err := bot.New(bot.Options{
		Token:          config.GetDiscordBotToken(),
		Activity:       config.GetBotActivity(),
		RequestTimeout: config.GetRequestTimeout(),
	}, dispatcher, logger)
	if err != nil {
		logger.Fatalw("create bot", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := weatherBot.Run(ctx); err != nil {
		logger.Fatalw("bot stopped", "error", err)
	}
	logger.Infow("shutdown complete")
}
