package currency

import "testing"

func TestDisplayConvertsAndRounds(t *testing.T) {
	npr, _ := Lookup("NPR")
	rates := Table{"NPR": 132.5}
	// 132 USD * 132.5 = 17490 → charm rounds to 17489, grouped.
	if got := Display(132, npr, rates); got != "रू17,489" {
		t.Fatalf("unexpected display: %q", got)
	}
}

func TestDisplayMissingRateIsIdentity(t *testing.T) {
	eur, _ := Lookup("EUR")
	if got := Display(132, eur, Table{}); got != "€129" {
		t.Fatalf("missing rate must default to 1, got %q", got)
	}
	if got := Display(132, eur, nil); got != "€129" {
		t.Fatalf("nil table must default to 1, got %q", got)
	}
}

func TestDisplayZeroAndNegative(t *testing.T) {
	usd, _ := Lookup("USD")
	if got := Display(0, usd, nil); got != "$0" {
		t.Fatalf("zero renders as symbol+0, got %q", got)
	}
	if got := Display(-50, usd, nil); got != "$0" {
		t.Fatalf("negative renders as symbol+0, got %q", got)
	}
}

func TestDisplaySmallAmountFloorsToNine(t *testing.T) {
	usd, _ := Lookup("USD")
	if got := Display(5, usd, nil); got != "$9" {
		t.Fatalf("small positive amounts display as 9, got %q", got)
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	info, ok := Lookup("npr")
	if !ok || info.Code != "NPR" {
		t.Fatalf("lookup should normalise case, got %+v ok=%v", info, ok)
	}
	if _, ok := Lookup("XXX"); ok {
		t.Fatal("unsupported code must not resolve")
	}
}
