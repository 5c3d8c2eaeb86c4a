package numeric

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"$100.00", "100"},
		{"$1,234.50", "1234.5"},
		{"0.819", "0.819"},
		{"  42 ", "42"},
		{"-12.5", "-12.5"},
		{"N/A", "0"},
		{"", "0"},
		{"-", "0"},
	}

	for _, tc := range cases {
		got := ParseAmount(tc.in)
		want, err := decimal.NewFromString(tc.want)
		require.NoError(t, err)
		assert.True(t, got.Equal(want), "ParseAmount(%q) = %s, want %s", tc.in, got, want)
	}
}

func TestAmountUnmarshalJSON(t *testing.T) {
	var payload struct {
		Number Amount `json:"number"`
		Text   Amount `json:"text"`
		Junk   Amount `json:"junk"`
		Null   Amount `json:"null"`
	}

	raw := `{"number": 90.5, "text": "$1,000.25", "junk": {"nested": true}, "null": null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.True(t, payload.Number.Equal(decimal.NewFromFloat(90.5)))
	assert.True(t, payload.Text.Equal(decimal.RequireFromString("1000.25")))
	assert.True(t, payload.Junk.IsZero(), "non-scalar decodes to zero, not an error")
	assert.True(t, payload.Null.IsZero())
}

func TestAmountMarshalJSON(t *testing.T) {
	out, err := json.Marshal(NewAmount(decimal.RequireFromString("68.4")))
	require.NoError(t, err)
	assert.Equal(t, "68.4", string(out))
}
