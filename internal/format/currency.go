// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyFormatter renders amounts in a fixed currency and locale.
type CurrencyFormatter struct {
	printer *message.Printer
	symbol  string
	verb    string
}

// NewCurrencyFormatter creates a formatter for the given locale and unit.
// The number of fraction digits follows the unit's standard rounding.
func NewCurrencyFormatter(tag language.Tag, unit currency.Unit, symbol string) *CurrencyFormatter {
	scale, _ := currency.Standard.Rounding(unit)
	return &CurrencyFormatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
		verb:    fmt.Sprintf("%%.%df", scale),
	}
}

// Format renders amount as "$1,234.50". Negative amounts get a leading
// minus ("-$12.00"); NaN and infinities render as zero.
func (f *CurrencyFormatter) Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	neg := amount < 0
	digits := f.printer.Sprintf(f.verb, math.Abs(amount))

	// Rounding can turn a tiny negative into zero
	if neg && strings.Trim(digits, "0.,") == "" {
		neg = false
	}

	if neg {
		return "-" + f.symbol + digits
	}
	return f.symbol + digits
}

var usd = NewCurrencyFormatter(language.AmericanEnglish, currency.USD, "$")

// Currency formats a US dollar amount, e.g. Currency(1234.5) == "$1,234.50".
// The zero value renders as "$0.00".
func Currency(amount float64) string {
	return usd.Format(amount)
}
