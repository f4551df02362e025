package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_ConvertUSDToJPY(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","rates":{"USD":1,"JPY":151.37,"EUR":0.92}}`))
	}))
	defer server.Close()

	c := NewConverter(NewHTTPRateSource(server.URL))

	jpy, rate, err := c.ConvertUSDToJPY(context.Background(), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.True(t, rate.IsPositive())
	assert.True(t, decimal.RequireFromString("151.37").Equal(rate))
	assert.True(t, jpy.Equal(rate))

	jpy, _, err = c.ConvertUSDToJPY(context.Background(), decimal.RequireFromString("0.09"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("13.6233").Equal(jpy), jpy.String())
}

func TestConverter_RateSourceUnavailable(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
		},
		{
			name: "no jpy",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"rates":{"EUR":0.92}}`))
			},
		},
		{
			name: "zero rate",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"rates":{"JPY":0}}`))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			jpy, rate, err := NewConverter(NewHTTPRateSource(server.URL)).
				ConvertUSDToJPY(context.Background(), decimal.NewFromInt(1))
			assert.ErrorIs(t, err, ErrRateSourceUnavailable)
			assert.True(t, rate.IsZero())
			assert.True(t, jpy.IsZero())
		})
	}
}

func TestConverter_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, _, err := NewConverter(NewHTTPRateSource(url)).ConvertUSDToJPY(context.Background(), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrRateSourceUnavailable)
}
