package ioc

import (
	"context"
	"log/slog"

	"github.com/KNICEX/claude-console/internal/service/llm"
	"github.com/KNICEX/claude-console/internal/service/llm/anthropic"
	"github.com/KNICEX/claude-console/internal/service/llm/gemini"
	"github.com/google/generative-ai-go/genai"
	"github.com/spf13/viper"
	"google.golang.org/api/option"
)

func InitAnthropicSvc() *anthropic.Service {
	type Config struct {
		ApiKey    string `mapstructure:"api_key"`
		BaseURL   string `mapstructure:"base_url"`
		MaxTokens int64  `mapstructure:"max_tokens"`
	}

	if err := viper.BindEnv("llm.anthropic.api_key", "ANTHROPIC_API_KEY"); err != nil {
		panic(err)
	}
	var cfg Config
	if err := viper.UnmarshalKey("llm.anthropic", &cfg); err != nil {
		panic(err)
	}
	// UnmarshalKey 不会带上只存在于环境变量中的 key
	if cfg.ApiKey == "" {
		cfg.ApiKey = viper.GetString("llm.anthropic.api_key")
	}

	var opts []anthropic.Option
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}
	if cfg.MaxTokens > 0 {
		opts = append(opts, anthropic.WithMaxTokens(cfg.MaxTokens))
	}
	if cfg.ApiKey == "" {
		slog.Warn("anthropic api key not set, streaming calls will be refused")
	}
	return anthropic.NewService(cfg.ApiKey, opts...)
}

// InitGeminiCli returns nil when no key is configured.
func InitGeminiCli() *genai.Client {
	type Config struct {
		ApiKey []string `mapstructure:"api_key"`
	}

	if err := viper.BindEnv("llm.gemini.api_key", "GEMINI_API_KEY"); err != nil {
		panic(err)
	}
	var cfg Config
	if err := viper.UnmarshalKey("llm.gemini", &cfg); err != nil {
		panic(err)
	}
	if len(cfg.ApiKey) == 0 {
		cfg.ApiKey = viper.GetStringSlice("llm.gemini.api_key")
	}

	if len(cfg.ApiKey) == 0 || cfg.ApiKey[0] == "" {
		slog.Info("no gemini api key set, gemini models disabled")
		return nil
	}

	cli, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.ApiKey[0]))
	if err != nil {
		panic(err)
	}
	return cli
}

// InitStreamer routes gemini-* models to Gemini and everything else to Anthropic.
func InitStreamer(anthropicSvc *anthropic.Service, geminiCli *genai.Client) llm.Streamer {
	return llm.NewRouter(anthropicSvc).
		Handle("gemini-", gemini.NewService(geminiCli))
}
