// Package config loads process configuration from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the process reads from the environment. It is
// loaded once at startup and injected where needed.
type Config struct {
	DBPath    string `envconfig:"DB_PATH" default:"phonestock.sqlite3"`
	Addr      string `envconfig:"ADDR" default:":8080"`
	JWTSecret string `envconfig:"JWT_SECRET"`

	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`

	ExcelPath       string `envconfig:"EXCEL_FILE_PATH" default:"data/products.xlsx"`
	SyncSkipBadRows bool   `envconfig:"SYNC_SKIP_BAD_ROWS" default:"false"`

	AdminIDs     []int64 `envconfig:"ADMIN_IDS"`
	PowerUserIDs []int64 `envconfig:"POWER_USER_IDS"`

	PowerUserPermissions []string `envconfig:"POWER_USER_PERMISSIONS" default:"search,stats,transfer,sync"`
	UserPermissions      []string `envconfig:"USER_PERMISSIONS" default:"search"`
}

// Load reads the .env file if one exists, then the environment.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return &cfg, nil
}
