package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Errorw("Error finding project root", "error", err)
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
		}

		err = viper.MergeInConfig()
		if err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// GetDiscordBotToken returns the Discord bot token from the environment.
func GetDiscordBotToken() string {
	_ = godotenv.Load()
	return os.Getenv("DISCORD_BOT_TOKEN")
}

// GetWeatherAPIToken returns the OpenWeatherMap API key from the environment.
func GetWeatherAPIToken() string {
	_ = godotenv.Load()
	return os.Getenv("WEATHER_API_TOKEN")
}

func GetWeatherAPIURL() string {
	initConfig()
	apiURL := viper.GetString("weather.api_url")
	if apiURL == "" {
		apiURL = "https://api.openweathermap.org/data/2.5"
	}
	return apiURL
}

func GetWeatherUnits() string {
	initConfig()
	units := viper.GetString("weather.units")
	if units == "" {
		units = "metric"
	}
	return units
}

// GetWeatherTimeout returns the provider HTTP timeout as a time.Duration.
// Defaults to 10s if not set or invalid.
func GetWeatherTimeout() time.Duration {
	initConfig()
	durStr := viper.GetString("weather.timeout")
	if durStr == "" {
		durStr = "10s"
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		return 10 * time.Second
	}
	return dur
}

func GetCommandPrefix() string {
	initConfig()
	prefix := viper.GetString("bot.prefix")
	if prefix == "" {
		prefix = "."
	}
	return prefix
}

func GetBotDescription() string {
	initConfig()
	return viper.GetString("bot.description")
}

func GetBotActivity() string {
	initConfig()
	return viper.GetString("bot.activity")
}

// GetRequestTimeout returns the budget for handling one chat message as a
// time.Duration. Defaults to 15s if not set or invalid.
func GetRequestTimeout() time.Duration {
	initConfig()
	durStr := viper.GetString("bot.request_timeout")
	if durStr == "" {
		durStr = "15s"
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		return 15 * time.Second
	}
	return dur
}

func GetLogFilePath() string {
	initConfig()
	path := viper.GetString("log.file")
	if path == "" {
		path = filepath.Join("logs", "errors.log")
	}
	return path
}

// GetLogRotation returns the size, backup count and age caps for the
// rotating error log file.
func GetLogRotation() (maxSizeMB, maxBackups, maxAgeDays int) {
	initConfig()
	maxSizeMB = viper.GetInt("log.max_size_mb")
	if maxSizeMB == 0 {
		maxSizeMB = 10
	}
	maxBackups = viper.GetInt("log.max_backups")
	if maxBackups == 0 {
		maxBackups = 5
	}
	maxAgeDays = viper.GetInt("log.max_age_days")
	if maxAgeDays == 0 {
		maxAgeDays = 28
	}
	return
}

// Validate reports the environment variables the bot cannot start without.
func Validate() error {
	var missing []string
	if GetDiscordBotToken() == "" {
		missing = append(missing, "DISCORD_BOT_TOKEN")
	}
	if GetWeatherAPIToken() == "" {
		missing = append(missing, "WEATHER_API_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}
