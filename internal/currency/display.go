package currency

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var groupingPrinter = message.NewPrinter(language.English)

// Convert multiplies a USD amount by the target currency's rate. A missing or
// non-positive rate defaults to 1, treating the amount as already denominated
// in the target currency.
func Convert(amountUSD float64, info Info, rates Table) float64 {
	rate := 1.0
	if rates != nil {
		if r, ok := rates[info.Code]; ok && r > 0 {
			rate = r
		}
	}
	return amountUSD * rate
}

// Display formats a USD amount for the given currency: convert, charm round,
// prefix the symbol. Zero and negative amounts render as the bare zero price;
// the caller keeps the numeric total for any further arithmetic.
func Display(amountUSD float64, info Info, rates Table) string {
	if amountUSD <= 0 {
		return info.Symbol + "0"
	}
	rounded := RoundTo9(Convert(amountUSD, info, rates))
	if _, ok := noDecimal[info.Code]; ok {
		return info.Symbol + groupingPrinter.Sprintf("%d", rounded)
	}
	return info.Symbol + strconv.FormatInt(rounded, 10)
}
