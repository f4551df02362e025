package llm

import (
	"context"
	"sync"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Exchange 一次问答：同一个请求发给一个或多个模型
// Usage and cost are scoped to the exchange; history is the caller's business.
type Exchange struct {
	streamer Streamer
	prices   PriceTable

	mu      sync.Mutex
	order   []string
	streams map[string]*Stream
}

func NewExchange(streamer Streamer, prices PriceTable) *Exchange {
	return &Exchange{
		streamer: streamer,
		prices:   prices,
		streams:  make(map[string]*Stream),
	}
}

// Stream opens a stream for model. Each model may be invoked once per exchange.
func (e *Exchange) Stream(ctx context.Context, req Request, model string) (*Stream, error) {
	e.mu.Lock()
	if _, ok := e.streams[model]; ok {
		e.mu.Unlock()
		return nil, &Error{Kind: ErrDuplicateModel, Stage: StageStream, Model: model}
	}
	// reserve the slot so concurrent callers can't open the same model twice
	e.streams[model] = nil
	e.mu.Unlock()

	s, err := e.streamer.Stream(ctx, req, model)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		delete(e.streams, model)
		return nil, err
	}
	e.streams[model] = s
	e.order = append(e.order, model)
	return s, nil
}

func (e *Exchange) Models() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.order...)
}

func (e *Exchange) Usage(model string) (Usage, error) {
	e.mu.Lock()
	s := e.streams[model]
	e.mu.Unlock()
	if s == nil {
		return Usage{}, &Error{Kind: ErrNotReady, Stage: StageUsage, Model: model}
	}
	return s.Usage()
}

// CostTable returns one row per invoked model, in invocation order.
func (e *Exchange) CostTable() ([]CostEntry, error) {
	res := make([]CostEntry, 0, len(e.Models()))
	for _, model := range e.Models() {
		usage, err := e.Usage(model)
		if err != nil {
			return nil, err
		}
		entry, err := e.prices.Cost(model, usage)
		if err != nil {
			return nil, err
		}
		res = append(res, entry)
	}
	return res, nil
}

func TotalUSD(entries []CostEntry) decimal.Decimal {
	return lo.Reduce(entries, func(acc decimal.Decimal, item CostEntry, _ int) decimal.Decimal {
		return acc.Add(item.TotalUSD)
	}, decimal.Zero)
}
