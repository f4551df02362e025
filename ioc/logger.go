package ioc

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

func InitLogger() {
	type Config struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("log", &cfg); err != nil {
		panic(err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
