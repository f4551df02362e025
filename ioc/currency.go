package ioc

import (
	"net/http"
	"time"

	"github.com/KNICEX/claude-console/internal/service/currency"
	"github.com/spf13/viper"
)

func InitConverter() *currency.Converter {
	type Config struct {
		RateURL string        `mapstructure:"rate_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("currency", &cfg); err != nil {
		panic(err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	src := currency.NewHTTPRateSource(cfg.RateURL, currency.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	return currency.NewConverter(src)
}
