package currency

import "strings"

// Info describes one supported display currency.
type Info struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// Table maps a currency code to its multiplier against USD. USD itself is 1.
type Table map[string]float64

// supported is the fixed set of currencies the storefront can display.
var supported = []Info{
	{Code: "USD", Symbol: "$"},
	{Code: "EUR", Symbol: "€"},
	{Code: "GBP", Symbol: "£"},
	{Code: "AUD", Symbol: "A$"},
	{Code: "INR", Symbol: "₹"},
	{Code: "NPR", Symbol: "रू"},
	{Code: "JPY", Symbol: "¥"},
}

// noDecimal lists currencies rendered as grouped integers.
var noDecimal = map[string]struct{}{
	"JPY": {},
	"NPR": {},
	"INR": {},
}

// Supported returns the fixed currency set in display order.
func Supported() []Info {
	out := make([]Info, len(supported))
	copy(out, supported)
	return out
}

// Lookup resolves a currency code against the supported set.
func Lookup(code string) (Info, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, info := range supported {
		if info.Code == code {
			return info, true
		}
	}
	return Info{}, false
}

// Identity returns a rate table that treats every supported currency as
// already denominated in USD. Used as the fallback when no rates are
// available.
func Identity() Table {
	t := make(Table, len(supported))
	for _, info := range supported {
		t[info.Code] = 1
	}
	return t
}
