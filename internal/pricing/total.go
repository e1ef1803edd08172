package pricing

// Item is the priced view of a catalog entry: a free-form base price string
// and zero or more pricing categories. When an item has no categories the
// base price is the full price.
type Item struct {
	BasePrice  string
	Categories []Category
}

// TotalUSD folds the base price and every selected option contribution into a
// single USD figure, multiplied by quantity. Quantity is clamped up to 1.
//
// The result is deliberately not clamped at zero: a discount combination
// exceeding the base price yields a negative total, exposed verbatim to the
// caller. Missing options and malformed prices contribute zero; the function
// never fails.
func TotalUSD(item Item, sel *Selection, quantity int) float64 {
	if quantity < 1 {
		quantity = 1
	}
	total := Parse(item.BasePrice).Contribution()
	if sel != nil {
		for _, cat := range item.Categories {
			switch cat.EffectiveMode() {
			case ModeAdditive:
				for _, opt := range cat.Options {
					if sel.AdditiveSelected(cat.Key, opt.Key) {
						total += Parse(opt.Price).Contribution()
					}
				}
			default:
				key, ok := sel.Exclusive(cat.Key)
				if !ok {
					continue
				}
				if opt, found := cat.Option(key); found {
					total += Parse(opt.Price).Contribution()
				}
			}
		}
	}
	return total * float64(quantity)
}
