package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	GameAPIURL     string        `yaml:"game-api-url" env:"GAME_API_URL" env-default:"https://battleships.devrel.hny.wtf"`
	BotName        string        `yaml:"bot-name" env:"BOT_NAME" env-default:"example-bot"`
	LogLevel       string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat      string        `yaml:"log-format" env:"LOG_FORMAT" env-default:"text"`
	RequestTimeout time.Duration `yaml:"request-timeout" env:"REQUEST_TIMEOUT" env-default:"10s"`
	MoveInterval   time.Duration `yaml:"move-interval" env:"MOVE_INTERVAL" env-default:"1s"`
	JoinRetryDelay time.Duration `yaml:"join-retry-delay" env:"JOIN_RETRY_DELAY" env-default:"5s"`
	HealthPort     string        `yaml:"health-port" env:"HEALTH_PORT"`
	Redis          Redis         `yaml:"redis"`
}

type Redis struct {
	Addr string `yaml:"addr" env:"REDIS_ADDR"`
}

// Load reads the config file at path when it exists, otherwise only the environment.
// Environment variables override values from the file.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	return config, nil
}

// MustLoad - load configuration from config.yml (if present) and the environment.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) Enabled() bool {
	return that.Addr != ""
}
