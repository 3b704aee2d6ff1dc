package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrEmptyToken токен бота не указан
var ErrEmptyToken = errors.New("BOT_TOKEN не задан")

// Config содержит конфигурацию приложения
type Config struct {
	BotToken string `mapstructure:"bot_token"`
	BotDebug bool   `mapstructure:"bot_debug"`

	// Эндпоинт "я жив"
	KeepAlive  bool          `mapstructure:"keep_alive"`
	HTTPAddr   string        `mapstructure:"http_addr"`
	BootOffset time.Duration `mapstructure:"boot_offset"`

	// Хранилище: csv, sqlite или postgres
	StorageDriver string `mapstructure:"storage_driver"`
	StatsDir      string `mapstructure:"stats_dir"`
	CatalogPath   string `mapstructure:"catalog_path"`
	CardPath      string `mapstructure:"card_path"`
	SQLitePath    string `mapstructure:"sqlite_path"`
	WatchCatalog  bool   `mapstructure:"watch_catalog"`

	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`

	Timezone     string        `mapstructure:"timezone"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	SessionSweep string        `mapstructure:"session_sweep"`
	Workers      int           `mapstructure:"workers"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

var defaults = map[string]any{
	"bot_token":      "",
	"bot_debug":      false,
	"keep_alive":     false,
	"http_addr":      ":8080",
	"boot_offset":    6 * time.Hour,
	"storage_driver": "csv",
	"stats_dir":      "stats",
	"catalog_path":   "files/exercises.csv",
	"card_path":      "files/card.png",
	"sqlite_path":    "liftlog.db",
	"watch_catalog":  true,
	"db_host":        "localhost",
	"db_port":        "5432",
	"db_user":        "postgres",
	"db_password":    "",
	"db_name":        "postgres",
	"timezone":       "Local",
	"session_ttl":    12 * time.Hour,
	"session_sweep":  "@every 10m",
	"workers":        8,
	"log_level":      "info",
	"log_format":     "console",
}

// Load загружает конфигурацию из переменных окружения или .env файла.
// Переменные окружения важнее значений из .env.
func Load() (*Config, error) {
	// .env может отсутствовать
	_ = godotenv.Load(".env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
		// AutomaticEnv не видит ключи при Unmarshal без явной привязки
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, err
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации: %w", err)
	}

	if cfg.BotToken == "" {
		return nil, ErrEmptyToken
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DSN возвращает строку подключения к базе данных
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// Location часовой пояс, в котором считается "сегодня"
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
