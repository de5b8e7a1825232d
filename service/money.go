package service

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// money rounds a simulation amount to cents for output.
func money(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value).Round(2)
}

// formatMoney renders an amount as "$1,234.56" for human-readable messages.
func formatMoney(value float64) string {
	return "$" + humanize.FormatFloat("#,###.##", value)
}
