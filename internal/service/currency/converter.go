package currency

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type Converter struct {
	src RateSource
}

func NewConverter(src RateSource) *Converter {
	return &Converter{src: src}
}

// ConvertUSDToJPY returns the converted amount and the rate used. The rate is
// fetched on every call; a failed fetch is returned as is, never replaced by a default.
func (c *Converter) ConvertUSDToJPY(ctx context.Context, usd decimal.Decimal) (jpy decimal.Decimal, rate decimal.Decimal, err error) {
	rate, err = c.src.USDToJPY(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("convert: %w", err)
	}
	return usd.Mul(rate), rate, nil
}
