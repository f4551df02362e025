package currency

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrRateSourceUnavailable = errors.New("exchange rate source unavailable")

// RateSource 实时汇率，不做缓存
type RateSource interface {
	USDToJPY(ctx context.Context) (decimal.Decimal, error)
}
