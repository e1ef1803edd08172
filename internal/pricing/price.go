package pricing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies how a price string contributes to a running total.
type Kind string

const (
	// KindPlain is a standalone price, e.g. "150 USD".
	KindPlain Kind = "plain"
	// KindAdditive is a surcharge with an explicit leading plus, e.g. "+30 USD".
	KindAdditive Kind = "additive"
	// KindDiscount is a flat reduction, e.g. "-10 USD".
	KindDiscount Kind = "discount"
	// KindPercentage is a percentage reduction, e.g. "-10% discount". Percentage
	// discounts are displayed but never resolved to a numeric effect; they
	// contribute zero to totals.
	KindPercentage Kind = "percentage"
	// KindFree covers strings with no numeric content at all, e.g. "Free".
	KindFree Kind = "free"
)

// numbertoken matches a signed decimal number. Only the first match in a price
// string counts; "+100 USD/month" yields 100 once.
var numberToken = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// ParsedPrice is the typed result of parsing a free-form price string.
type ParsedPrice struct {
	Magnitude float64
	Kind      Kind
}

// Parse turns a free-form price string into a ParsedPrice. It never fails:
// malformed or empty input degrades to a zero-magnitude KindFree.
func Parse(raw string) ParsedPrice {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, "-") && strings.Contains(s, "%") {
		return ParsedPrice{Kind: KindPercentage}
	}
	token := numberToken.FindString(s)
	if token == "" {
		return ParsedPrice{Kind: KindFree}
	}
	kind := KindPlain
	switch token[0] {
	case '+':
		kind = KindAdditive
	case '-':
		kind = KindDiscount
	}
	value, err := strconv.ParseFloat(strings.TrimPrefix(token, "+"), 64)
	if err != nil {
		return ParsedPrice{Kind: KindFree}
	}
	return ParsedPrice{Magnitude: math.Abs(value), Kind: kind}
}

// Contribution returns the signed amount the parsed price adds to a total:
// positive for plain and additive prices, negative for discounts, zero for
// percentage and free entries.
func (p ParsedPrice) Contribution() float64 {
	switch p.Kind {
	case KindPlain, KindAdditive:
		return p.Magnitude
	case KindDiscount:
		return -p.Magnitude
	default:
		return 0
	}
}
