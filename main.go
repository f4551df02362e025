package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KNICEX/claude-console/internal/entity"
	"github.com/KNICEX/claude-console/internal/repo"
	"github.com/KNICEX/claude-console/internal/service/currency"
	"github.com/KNICEX/claude-console/internal/service/llm"
	"github.com/KNICEX/claude-console/ioc"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var (
	configFile = pflag.String("config", "./config/config.example.yaml", "specify config file (copy config.example.yaml to add your keys)")
	mode       = pflag.String("mode", "text", "text or vision")
	prompt     = pflag.String("prompt", "What is the second highest mountain in Japan? Please just tell me the name", "prompt text")
	imagePath  = pflag.String("image", "", "image file for vision mode (jpg, jpeg, png, gif)")
	models     = pflag.StringSlice("models", []string{"claude-3-opus-20240229"}, "models to compare")
)

func initViper() {
	// --config=./config/xxx.yaml
	pflag.Parse()

	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s \n", err))
	}
}

func main() {
	initViper()
	ioc.InitLogger()

	db := ioc.InitDB()
	if err := repo.InitTables(db); err != nil {
		panic(err)
	}
	chatRepo := repo.NewChatRepo(db)

	streamer := ioc.InitStreamer(ioc.InitAnthropicSvc(), ioc.InitGeminiCli())
	prices := ioc.InitPriceTable()
	converter := ioc.InitConverter()

	req, err := buildRequest()
	if err != nil {
		slog.Error("build request failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	exchange := llm.NewExchange(streamer, prices)
	answers, err := run(ctx, exchange, req, *models)
	if err != nil {
		slog.Error("exchange failed", "error", err)
		os.Exit(1)
	}

	exchangeId := uuid.NewString()
	for _, a := range answers {
		_, err = chatRepo.Append(ctx, entity.ChatEntry{
			ExchangeId:   exchangeId,
			Model:        a.Model,
			User:         req.UserLabel(),
			Assistant:    a.Content,
			InputTokens:  a.Usage.InputTokens,
			OutputTokens: a.Usage.OutputTokens,
			CreatedAt:    time.Now(),
		})
		if err != nil {
			slog.Error("append chat history failed", "model", a.Model, "error", err)
		}
	}

	printCost(ctx, exchange, prices, answers, converter)
	printHistory(ctx, chatRepo)
}

func buildRequest() (llm.Request, error) {
	switch *mode {
	case "text":
		return llm.NewTextRequest(*prompt), nil
	case "vision":
		data, err := os.ReadFile(*imagePath)
		if err != nil {
			return llm.Request{}, err
		}
		return llm.NewImageRequestFromFile(filepath.Base(*imagePath), data, *prompt)
	default:
		return llm.Request{}, fmt.Errorf("unknown mode %q", *mode)
	}
}

// run streams a single model live to stdout; several models are streamed
// concurrently and printed one panel after another.
func run(ctx context.Context, exchange *llm.Exchange, req llm.Request, models []string) ([]llm.Answer, error) {
	if len(models) == 1 {
		s, err := exchange.Stream(ctx, req, models[0])
		if err != nil {
			return nil, err
		}
		defer s.Close()
		fmt.Printf("%s response:\n", models[0])
		for s.Next() {
			fmt.Print(s.Fragment())
		}
		fmt.Println()
		if err = s.Err(); err != nil {
			return nil, err
		}
		usage, err := s.Usage()
		if err != nil {
			return nil, err
		}
		return []llm.Answer{{Model: s.Model(), Content: s.Text(), Usage: usage}}, nil
	}

	// 各模型互不影响, 一个失败不会取消另一个
	answers := make([]llm.Answer, len(models))
	errs := make([]error, len(models))
	var eg errgroup.Group
	for i, model := range models {
		i, model := i, model
		eg.Go(func() error {
			s, err := exchange.Stream(ctx, req, model)
			if err != nil {
				errs[i] = err
				return nil
			}
			answers[i], errs[i] = llm.Collect(s)
			return nil
		})
	}
	_ = eg.Wait()

	var ok []llm.Answer
	for i, model := range models {
		if errs[i] != nil {
			slog.Error("model failed", "model", model, "error", errs[i])
			fmt.Printf("%s response: failed\n\n", model)
			continue
		}
		fmt.Printf("%s response:\n%s\n\n", model, answers[i].Content)
		ok = append(ok, answers[i])
	}
	if len(ok) == 0 {
		return nil, errors.Join(errs...)
	}
	return ok, nil
}

func printCost(ctx context.Context, exchange *llm.Exchange, prices llm.PriceTable, answers []llm.Answer, converter *currency.Converter) {
	table, err := exchange.CostTable()
	if err != nil {
		// 有模型失败时只统计成功的那些
		table = lo.FilterMap(answers, func(item llm.Answer, index int) (llm.CostEntry, bool) {
			entry, err := prices.Cost(item.Model, item.Usage)
			if err != nil {
				slog.Error("cost failed", "model", item.Model, "error", err)
				return llm.CostEntry{}, false
			}
			return entry, true
		})
	}
	// 汇率单独展示, 所以按 1 美元换算
	_, rate, err := converter.ConvertUSDToJPY(ctx, decimal.NewFromInt(1))
	if err != nil {
		slog.Error("usd/jpy conversion failed", "error", err)
	}

	fmt.Println("Cost:")
	for _, row := range table {
		line := fmt.Sprintf("  %-28s in=%-6d out=%-6d $%s", row.Model,
			row.Usage.InputTokens, row.Usage.OutputTokens, row.TotalUSD.StringFixed(6))
		if err == nil {
			line += fmt.Sprintf("  ¥%s", row.TotalUSD.Mul(rate).StringFixed(4))
		}
		fmt.Println(line)
	}
	if err == nil {
		fmt.Printf("USD/JPY rate: %s\n", rate.String())
	}
}

func printHistory(ctx context.Context, chatRepo repo.ChatRepo) {
	entries, err := chatRepo.List(ctx)
	if err != nil {
		slog.Error("list chat history failed", "error", err)
		return
	}
	fmt.Println("Chat History")
	fmt.Println(strings.Join(lo.Map(entries, func(item entity.ChatEntry, index int) string {
		return fmt.Sprintf("User: %s\nAssistant (%s): %s", item.User, item.Model, item.Assistant)
	}), "\n"))
}
