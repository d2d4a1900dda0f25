package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"WeatherBot/internal/service"
	"WeatherBot/internal/service/config"
	"WeatherBot/internal/telegram"
	"WeatherBot/internal/weather"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.Stamp,
	}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Str("logger", "weatherbot").
		Caller().
		Logger()

	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatal().Err(err).Msg("failed to load .env")
		}
		log.Debug().Msg("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("bad log level")
	}
	log.Logger = log.Logger.Level(level)

	ctx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	weatherClient := weather.NewClient(weather.Config{
		Endpoint: cfg.WeatherEndpoint,
		APIKey:   cfg.Credentials.WeatherAPIKey,
		Units:    cfg.Units,
		Lang:     cfg.Lang,
		Timeout:  cfg.Timeout,
	})

	bot, err := telegram.New(telegram.Config{
		Token:       cfg.Credentials.TelegramToken,
		Endpoint:    cfg.TelegramEndpoint,
		Debug:       cfg.TelegramDebug,
		Timeout:     cfg.Timeout,
		PollTimeout: cfg.PollTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create telegram client")
	}

	service := service.New(cfg, weatherClient, bot)

	log.Info().Msg("starting service")
	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("run error")
	}
	log.Info().Msg("service stopped")
}
