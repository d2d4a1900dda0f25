package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Token    string
	Endpoint string
	Debug    bool
	// Timeout is added on top of the long-poll timeout for every request.
	Timeout     time.Duration
	PollTimeout time.Duration
}

// Client is a thin wrapper over the Bot API: getUpdates and sendMessage.
type Client struct {
	bot *tgbotapi.BotAPI
}

// New makes no Bot API calls; token problems surface on the first request.
func New(config Config) (*Client, error) {
	if config.Token == "" {
		return nil, errors.New("empty bot token")
	}

	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	if err := tgbotapi.SetLogger(botLogger{}); err != nil {
		return nil, fmt.Errorf("failed to set bot logger: %w", err)
	}

	bot := &tgbotapi.BotAPI{
		Token: config.Token,
		Debug: config.Debug,
		Client: &http.Client{
			Timeout: config.PollTimeout + config.Timeout,
		},
	}
	bot.SetAPIEndpoint(endpoint)

	log.Info().
		Bool("debug", config.Debug).
		Msg("telegram client ready")

	return &Client{bot: bot}, nil
}

// SendMessage sends text to chat, which is either a numeric chat id or an
// @channel username.
func (c *Client) SendMessage(ctx context.Context, chat string, text string) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("chat", chat).Str("text", text).Msg("sending message")

	if err := ctx.Err(); err != nil {
		return &SendMessageError{Chat: chat, Err: err}
	}

	if _, err := c.bot.Send(newMessageConfig(chat, text)); err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) {
			logger.Debug().Int("code", apiErr.Code).Msg("bot api rejected message")
		}
		return &SendMessageError{Chat: chat, Err: err}
	}

	logger.Debug().Str("chat", chat).Msg("message sent")
	return nil
}

// Updates long-polls getUpdates starting at offset.
func (c *Client) Updates(ctx context.Context, offset int, timeout time.Duration) ([]Update, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := tgbotapi.NewUpdate(offset)
	cfg.Timeout = int(timeout / time.Second)

	ups, err := c.bot.GetUpdates(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get updates: %w", err)
	}

	updates := make([]Update, 0, len(ups))
	for _, up := range ups {
		updates = append(updates, newUpdate(up))
	}
	return updates, nil
}

func newMessageConfig(chat, text string) tgbotapi.MessageConfig {
	if strings.HasPrefix(chat, "@") {
		return tgbotapi.NewMessageToChannel(chat, text)
	}
	chatID, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		return tgbotapi.NewMessageToChannel(chat, text)
	}
	return tgbotapi.NewMessage(chatID, text)
}

type SendMessageError struct {
	Chat string
	Err  error
}

func (e *SendMessageError) Error() string {
	return fmt.Sprintf("failed to send message to %s: %v", e.Chat, e.Err)
}

func (e *SendMessageError) Unwrap() error {
	return e.Err
}
