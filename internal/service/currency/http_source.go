package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultRateURL = "https://open.er-api.com/v6/latest/USD"

type HTTPRateSource struct {
	url    string
	client *http.Client
}

type Option func(s *HTTPRateSource)

func WithHTTPClient(cli *http.Client) Option {
	return func(s *HTTPRateSource) {
		s.client = cli
	}
}

func NewHTTPRateSource(url string, opts ...Option) *HTTPRateSource {
	if url == "" {
		url = DefaultRateURL
	}
	src := &HTTPRateSource{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(src)
	}
	return src
}

type ratesResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (s *HTTPRateSource) USDToJPY(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrRateSourceUnavailable, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrRateSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return decimal.Zero, fmt.Errorf("%w: status %d: %s", ErrRateSourceUnavailable, resp.StatusCode, body)
	}

	var res ratesResponse
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decode response: %v", ErrRateSourceUnavailable, err)
	}
	rate, ok := res.Rates["JPY"]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: no usable JPY rate in response", ErrRateSourceUnavailable)
	}
	return rate, nil
}
