package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env string `validate:"omitempty,oneof=dev prod test"`
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
		Timeout     int   `validate:"gte=0"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string `validate:"required"`
	} `mapstructure:"http"`

	Storage struct {
		Driver      string `validate:"oneof=memory postgres sqlite"`
		PostgresDSN string `mapstructure:"postgres_dsn" validate:"required_if=Driver postgres"`
		SQLitePath  string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
		Migrations  string
	} `mapstructure:"storage"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Sheets struct {
		Path        string
		LoadOnStart bool `mapstructure:"load_on_start"`
	} `mapstructure:"sheets"`

	Alerts struct {
		LowStockThreshold float64 `mapstructure:"low_stock_threshold" validate:"gte=0"`
	} `mapstructure:"alerts"`

	Recipes struct {
		File string
	} `mapstructure:"recipes"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	// APP_HTTP_ADDR, APP_TELEGRAM_TOKEN, ...
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "prod")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("telegram.timeout", 30)
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.migrations", "migrations")
	v.SetDefault("alerts.low_stock_threshold", 10)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if err := validator.New().Struct(c); err != nil {
		return c, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}
