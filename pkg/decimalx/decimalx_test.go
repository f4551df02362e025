package decimalx

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFromString(t *testing.T) {
	testCases := []struct {
		name    string
		s       string
		want    decimal.Decimal
		wantErr bool
	}{
		{name: "empty", s: "", want: decimal.Zero},
		{name: "price", s: "0.00025", want: decimal.New(25, -5)},
		{name: "bad", s: "abc", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := FromString(tc.s)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tc.want.Equal(d), d.String())
		})
	}
	assert.Panics(t, func() { MustFromString("abc") })
}
