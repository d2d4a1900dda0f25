package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvWeatherAPIKey  = "API_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"

	EnvConfigPath = "CONFIG_PATH"
	EnvLogLevel   = "LOG_LEVEL"
)

// Credentials are read from the environment only, never from the settings file.
type Credentials struct {
	WeatherAPIKey  string
	TelegramToken  string
	TelegramChatID string
}

type requiredKey struct {
	env   string
	value string
}

func (c Credentials) required() []requiredKey {
	return []requiredKey{
		{env: EnvWeatherAPIKey, value: c.WeatherAPIKey},
		{env: EnvTelegramToken, value: c.TelegramToken},
		{env: EnvTelegramChatID, value: c.TelegramChatID},
	}
}

// Missing returns the environment keys of every empty credential.
func (c Credentials) Missing() []string {
	var missing []string
	for _, k := range c.required() {
		if k.value == "" {
			missing = append(missing, k.env)
		}
	}
	return missing
}

type MissingCredentialsError struct {
	Keys []string
}

func (e *MissingCredentialsError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Keys, ", ")
}

type Config struct {
	Credentials Credentials `yaml:"-"`

	WeatherEndpoint string `yaml:"weather_endpoint"`
	Units           string `yaml:"units"`
	Lang            string `yaml:"lang"`

	TelegramEndpoint string        `yaml:"telegram_endpoint"`
	TelegramDebug    bool          `yaml:"telegram_debug"`
	PollTimeout      time.Duration `yaml:"poll_timeout"`
	Delay            time.Duration `yaml:"poll_delay"`
	Timeout          time.Duration `yaml:"http_timeout"`

	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		WeatherEndpoint:  "https://api.openweathermap.org/data/2.5/weather",
		Units:            "metric",
		Lang:             "ru",
		TelegramEndpoint: "https://api.telegram.org/bot%s/%s",
		PollTimeout:      5 * time.Second,
		Delay:            100 * time.Millisecond,
		Timeout:          10 * time.Second,
		LogLevel:         "debug",
	}
}

// Load builds the config from defaults, the optional YAML file named by
// CONFIG_PATH and the environment. All missing credentials are reported at once.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigPath); path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Credentials = Credentials{
		WeatherAPIKey:  os.Getenv(EnvWeatherAPIKey),
		TelegramToken:  os.Getenv(EnvTelegramToken),
		TelegramChatID: os.Getenv(EnvTelegramChatID),
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}

	if missing := cfg.Credentials.Missing(); len(missing) != 0 {
		return Config{}, &MissingCredentialsError{Keys: missing}
	}

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	// keys absent from the file keep their defaults
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
