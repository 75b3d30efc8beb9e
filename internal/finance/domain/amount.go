package domain

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	// MaxAmountScale is the number of fractional digits an amount may carry.
	MaxAmountScale  = 2
	maxAmountDigits = 12
)

// MaxAmount is the largest accepted operation amount or budget limit.
var MaxAmount = decimal.New(1, maxAmountDigits)

// amountInRange reports whether d fits MaxAmount and MaxAmountScale. The
// exponent is checked first so extreme values are never rescaled.
func amountInRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > maxAmountDigits || exp < -maxAmountDigits {
		return false
	}
	if d.GreaterThan(MaxAmount) {
		return false
	}
	return d.Equal(d.Truncate(MaxAmountScale))
}

// decodeAmount treats a missing, null or empty string amount as not sent.
func decodeAmount(raw json.RawMessage) (*decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`""`)) {
		return nil, nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return &d, nil
}
