package ioc

import (
	"fmt"

	"github.com/KNICEX/claude-console/internal/service/llm"
	"github.com/KNICEX/claude-console/pkg/decimalx"
	"github.com/spf13/viper"
)

func InitPriceTable() llm.PriceTable {
	type Config struct {
		Model       string `mapstructure:"model"`
		InputPer1K  string `mapstructure:"input_per_1k"`
		OutputPer1K string `mapstructure:"output_per_1k"`
	}

	var cfg []Config
	if err := viper.UnmarshalKey("pricing", &cfg); err != nil {
		panic(err)
	}

	table := make(llm.PriceTable, len(cfg))
	for _, c := range cfg {
		// 输入价格可以留空, 视为免费
		in, err := decimalx.FromString(c.InputPer1K)
		if err != nil {
			panic(fmt.Errorf("pricing %s: %w", c.Model, err))
		}
		table[c.Model] = llm.Price{
			InputPer1K:  in,
			OutputPer1K: decimalx.MustFromString(c.OutputPer1K),
		}
	}
	if err := table.Validate(); err != nil {
		panic(err)
	}
	return table
}
