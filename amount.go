package ledgerview

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatAmount formats value in the given ISO currency, rounded to the
// currency's minor unit. Unknown currencies are formatted as plain numbers
// with two decimals.
func FormatAmount(value decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return value.StringFixed(2)
	}
	minor := value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatSignedAmount is FormatAmount with an explicit sign on positive values.
func FormatSignedAmount(value decimal.Decimal, currency string) string {
	if value.IsPositive() {
		return "+" + FormatAmount(value, currency)
	}
	return FormatAmount(value, currency)
}
