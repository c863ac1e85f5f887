package json_types

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money is a payment amount as the clinic API sends it: usually a JSON number,
// sometimes a quoted decimal string, occasionally garbage. Unparsable input
// decodes as zero instead of failing the whole read.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func MoneyFromFloat(f float64) Money {
	return Money{Decimal: decimal.NewFromFloat(f)}
}

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		m.Decimal = decimal.Zero
		return nil
	}

	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		m.Decimal = decimal.Zero
		return nil
	}

	m.Decimal = d
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal)
}
