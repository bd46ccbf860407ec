// Package config loads server and CLI settings from the environment. A .env file
// in the working directory is read first when present.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds every setting; field tags name the environment variables.
type Config struct {
	Port         string `env:"PORT"          envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL"     envDefault:"info"`
	DBPath       string `env:"DB_PATH"       envDefault:"./data/app.db"`
	AppEnv       string `env:"APP_ENV"       envDefault:"development"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	JWTSecret      string `env:"JWT_SECRET"       envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME"      envDefault:"wordsarehard_token"`

	WordsFile      string `env:"WORDS_FILE"`
	ChallengesFile string `env:"CHALLENGES_FILE"`
	DailySalt      string `env:"DAILY_SALT" envDefault:"local_dev_salt"`

	Rounds           int `env:"PUZZLE_ROUNDS"     envDefault:"8"`
	GenerateAttempts int `env:"GENERATE_ATTEMPTS" envDefault:"5"`
}

// Production reports whether cookies should be Secure / SameSite=None.
func (c Config) Production() bool { return c.AppEnv == "production" }

// Load reads .env (if any) and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.GenerateAttempts < 1 {
		cfg.GenerateAttempts = 1
	}
	return cfg, nil
}

// SetupLogging applies LOG_LEVEL to the global zerolog level. Unknown levels
// leave the default in place.
func (c Config) SetupLogging() {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}
