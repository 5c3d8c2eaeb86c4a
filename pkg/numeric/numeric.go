package numeric

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decimal that tolerates the formats the quote-engine backend
// actually sends: plain JSON numbers, quoted numbers, and formatted currency
// text such as "$1,234.50". Anything that does not survive cleanup decodes
// to zero instead of failing the whole payload.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal value as an Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// UnmarshalJSON never returns an error; unparsable input becomes zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		a.Decimal = decimal.Zero
		return nil
	}

	switch v := raw.(type) {
	case float64:
		a.Decimal = decimal.NewFromFloat(v)
	case string:
		a.Decimal = ParseAmount(v)
	default:
		a.Decimal = decimal.Zero
	}
	return nil
}

// MarshalJSON renders the plain number, matching what the frontend expects.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// ParseAmount strips currency symbols and thousands separators from formatted
// price text and parses the remainder. "$1,234.50" -> 1234.5. A value that
// does not parse to a finite number is 0.
func ParseAmount(s string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, strings.TrimSpace(s))

	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
