package pricing

import "testing"

func TestParsePlain(t *testing.T) {
	p := Parse("150 USD")
	if p.Kind != KindPlain {
		t.Fatalf("expected plain kind, got %s", p.Kind)
	}
	if p.Contribution() != 150 {
		t.Fatalf("expected contribution 150, got %v", p.Contribution())
	}
}

func TestParseAdditive(t *testing.T) {
	p := Parse("+30 USD")
	if p.Kind != KindAdditive {
		t.Fatalf("expected additive kind, got %s", p.Kind)
	}
	if p.Contribution() != 30 {
		t.Fatalf("expected contribution +30, got %v", p.Contribution())
	}
}

func TestParseDiscount(t *testing.T) {
	p := Parse("-10 USD")
	if p.Kind != KindDiscount {
		t.Fatalf("expected discount kind, got %s", p.Kind)
	}
	if p.Contribution() != -10 {
		t.Fatalf("expected contribution -10, got %v", p.Contribution())
	}
}

func TestParsePercentageContributesZero(t *testing.T) {
	p := Parse("-10% discount")
	if p.Kind != KindPercentage {
		t.Fatalf("expected percentage kind, got %s", p.Kind)
	}
	if p.Magnitude != 0 || p.Contribution() != 0 {
		t.Fatalf("percentage must contribute zero, got %v", p.Contribution())
	}
}

func TestParseFree(t *testing.T) {
	for _, raw := range []string{"Free", "", "   ", "contact us"} {
		p := Parse(raw)
		if p.Kind != KindFree {
			t.Fatalf("%q: expected free kind, got %s", raw, p.Kind)
		}
		if p.Contribution() != 0 {
			t.Fatalf("%q: expected zero contribution, got %v", raw, p.Contribution())
		}
	}
}

func TestParseFirstNumberWins(t *testing.T) {
	p := Parse("+100 USD/month for 12 months")
	if p.Magnitude != 100 {
		t.Fatalf("expected first number 100, got %v", p.Magnitude)
	}
	if p.Kind != KindAdditive {
		t.Fatalf("expected additive kind, got %s", p.Kind)
	}
}

func TestParseDecimal(t *testing.T) {
	p := Parse("19.99 USD")
	if p.Magnitude != 19.99 {
		t.Fatalf("expected 19.99, got %v", p.Magnitude)
	}
}

func TestParseTotality(t *testing.T) {
	// Parse must never panic, whatever the input.
	inputs := []string{"", " ", "%%--", "-%", "+", "-", "USD", "9-5% off", "١٢٣", "+.5"}
	for _, raw := range inputs {
		_ = Parse(raw)
	}
}

func TestModeFromTitle(t *testing.T) {
	if ModeFromTitle("Additional Services") != ModeAdditive {
		t.Fatal("expected additive for 'Additional Services'")
	}
	if ModeFromTitle("ADDITIONAL pages") != ModeAdditive {
		t.Fatal("classification must be case-insensitive")
	}
	if ModeFromTitle("License") != ModeExclusive {
		t.Fatal("expected exclusive for 'License'")
	}
}

func TestEffectiveModePrefersStoredMode(t *testing.T) {
	// A stored mode wins even when the title would classify differently.
	cat := Category{Title: "Additional Services", Mode: ModeExclusive}
	if cat.EffectiveMode() != ModeExclusive {
		t.Fatal("stored mode must take precedence over the title heuristic")
	}
	legacy := Category{Title: "Additional Services"}
	if legacy.EffectiveMode() != ModeAdditive {
		t.Fatal("legacy records fall back to the title heuristic")
	}
}
