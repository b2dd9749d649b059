package format

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	currencyTag = language.MustParse("pt-AO")
	numberTag   = language.MustParse("pt-BR")
)

// CurrencySymbol is appended to formatted amounts.
const CurrencySymbol = "Kz"

// Currency renders v as a Kwanza amount with two decimals, e.g. "1 234,56 Kz".
// NaN and infinities render as zero.
func Currency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0,00 " + CurrencySymbol
	}
	p := message.NewPrinter(currencyTag)
	return p.Sprintf("%.2f", v) + " " + CurrencySymbol
}

// Number renders v with two decimals and locale grouping, without a symbol.
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	p := message.NewPrinter(numberTag)
	return p.Sprintf("%.2f", v)
}

// RoundOne rounds v to one decimal place, half away from zero.
func RoundOne(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

// Margin is the markup of price over cost as a percentage of cost, rounded
// to one decimal. A zero cost or price yields 0.
func Margin(cost, price float64) float64 {
	if cost == 0 || price == 0 {
		return 0
	}
	c := decimal.NewFromFloat(cost)
	m := decimal.NewFromFloat(price).Sub(c).Div(c).Mul(decimal.NewFromInt(100))
	return m.Round(1).InexactFloat64()
}

// Profit is total minus cost.
func Profit(total, cost float64) float64 {
	return decimal.NewFromFloat(total).Sub(decimal.NewFromFloat(cost)).InexactFloat64()
}

// Percent returns part/whole*100 rounded to one decimal, or 0 when whole is 0.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	w := decimal.NewFromFloat(whole)
	return decimal.NewFromFloat(part).Div(w).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}

// Sum adds money values without accumulating binary rounding error.
func Sum(values ...float64) float64 {
	acc := decimal.Zero
	for _, v := range values {
		acc = acc.Add(decimal.NewFromFloat(v))
	}
	return acc.InexactFloat64()
}

// Mul multiplies a unit amount by a quantity.
func Mul(amount float64, qty int) float64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(int64(qty))).InexactFloat64()
}
