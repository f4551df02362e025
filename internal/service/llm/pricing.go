package llm

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// Validate rejects negative prices and non-positive output prices, so cost
// grows strictly with output tokens.
func (t PriceTable) Validate() error {
	for model, p := range t {
		if p.InputPer1K.IsNegative() {
			return fmt.Errorf("price table: negative input price for %s", model)
		}
		if !p.OutputPer1K.IsPositive() {
			return fmt.Errorf("price table: output price for %s must be positive", model)
		}
	}
	return nil
}

func (t PriceTable) Cost(model string, usage Usage) (CostEntry, error) {
	p, ok := t[model]
	if !ok {
		return CostEntry{}, &Error{Kind: ErrUnknownModelPrice, Stage: StageCost, Model: model}
	}
	in := decimal.NewFromInt(usage.InputTokens).Div(thousand).Mul(p.InputPer1K)
	out := decimal.NewFromInt(usage.OutputTokens).Div(thousand).Mul(p.OutputPer1K)
	return CostEntry{
		Model:     model,
		Usage:     usage,
		InputUSD:  in,
		OutputUSD: out,
		TotalUSD:  in.Add(out),
	}, nil
}
