package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"WeatherBot/internal/service/config"
	"WeatherBot/internal/telegram"
	"WeatherBot/internal/weather"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type WeatherFetcher interface {
	FetchWeather(ctx context.Context, city string) (any, error)
}

type Messenger interface {
	Updates(ctx context.Context, offset int, timeout time.Duration) ([]telegram.Update, error)
	SendMessage(ctx context.Context, chat string, text string) error
}

type Service struct {
	chat        string
	pollTimeout time.Duration
	delay       time.Duration

	weather   WeatherFetcher
	messenger Messenger
}

func New(config config.Config, weather WeatherFetcher, messenger Messenger) *Service {
	return &Service{
		chat:        config.Credentials.TelegramChatID,
		pollTimeout: config.PollTimeout,
		delay:       config.Delay,
		weather:     weather,
		messenger:   messenger,
	}
}

// Run polls for updates until ctx is cancelled. Errors never stop the loop.
func (s *Service) Run(ctx context.Context) error {
	var (
		offset int
		err    error
	)
	ctx = log.Logger.WithContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if offset, err = s.runIteration(ctx, offset); err != nil && ctx.Err() == nil {
			s.handleError(ctx, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.delay):
		}
	}
}

// runIteration handles one batch of updates and returns the next offset.
// The offset moves past an update before it is handled, so a failed update
// is never delivered again.
func (s *Service) runIteration(ctx context.Context, offset int) (int, error) {
	updates, err := s.messenger.Updates(ctx, offset, s.pollTimeout)
	if err != nil {
		return offset, fmt.Errorf("failed to get updates from offset %d: %w", offset, err)
	}

	for _, up := range updates {
		offset = up.ID + 1

		logger := log.With().
			Int("update_id", up.ID).
			Str("trace_id", uuid.NewString()).
			Logger()
		upCtx := logger.WithContext(ctx)

		if err = s.handleUpdate(upCtx, up); err != nil {
			s.handleError(upCtx, err)
		}
	}

	return offset, nil
}

func (s *Service) handleUpdate(ctx context.Context, up telegram.Update) error {
	logger := zerolog.Ctx(ctx)

	if up.Message == nil {
		logger.Debug().Msg("update without message, skipping")
		return nil
	}

	text := strings.TrimSpace(up.Message.Text)
	logger.Debug().
		Int64("chat_id", up.Message.ChatID).
		Int("message_id", up.Message.MessageID).
		Str("username", up.Message.Username).
		Str("text", text).
		Msg("got message")

	switch {
	case text == "":
		logger.Debug().Msg("message without text, skipping")
		return nil
	case text == startCommand:
		logger.Debug().Msg("got start command")
		return s.messenger.SendMessage(ctx, strconv.FormatInt(up.Message.ChatID, 10), welcomeText)
	case strings.HasPrefix(text, commandPrefix):
		logger.Debug().Str("command", text).Msg("ignoring command")
		return nil
	}

	return s.reportWeather(ctx, text)
}

func (s *Service) reportWeather(ctx context.Context, city string) error {
	payload, err := s.weather.FetchWeather(ctx, city)
	if err != nil {
		return err
	}

	info, err := weather.Parse(payload)
	if err != nil {
		return err
	}

	report, err := formatReport(city, info)
	if err != nil {
		return err
	}

	return s.messenger.SendMessage(ctx, s.chat, report)
}

// handleError logs err. Anything but a send failure is also reported to the
// configured chat, once; a failed report is only logged.
func (s *Service) handleError(ctx context.Context, err error) {
	logger := zerolog.Ctx(ctx)

	var sendErr *telegram.SendMessageError
	if errors.As(err, &sendErr) {
		logger.Error().
			Err(err).
			Str("chat", sendErr.Chat).
			Msg("failed to send message")
		return
	}

	logger.Error().Err(err).Msg("failed to process update")

	if notifyErr := s.messenger.SendMessage(ctx, s.chat, failureText(err)); notifyErr != nil {
		logger.Error().Err(notifyErr).Msg("failed to report failure to chat")
	}
}
