package pricing

import "testing"

func fixtureCategories() []Category {
	return []Category{
		{
			Key:   "cat-license",
			Title: "License",
			Mode:  ModeExclusive,
			Options: []Option{
				{Key: "opt-single", Name: "Single Site", Price: "150 USD"},
				{Key: "opt-five", Name: "Five Sites", Price: "250 USD"},
				{Key: "opt-unlimited", Name: "Unlimited", Price: "350 USD"},
			},
		},
		{
			Key:   "cat-extras",
			Title: "Additional Services",
			Mode:  ModeAdditive,
			Options: []Option{
				{Key: "opt-install", Name: "Installation", Price: "+30 USD"},
				{Key: "opt-seo", Name: "SEO Setup", Price: "+50 USD"},
			},
		},
	}
}

func TestNewSelectionDefaults(t *testing.T) {
	cats := fixtureCategories()
	sel := NewSelection(cats)

	key, ok := sel.Exclusive("cat-license")
	if !ok || key != "opt-single" {
		t.Fatalf("exclusive default must be the first option, got %q (ok=%v)", key, ok)
	}
	for _, opt := range cats[1].Options {
		if sel.AdditiveSelected("cat-extras", opt.Key) {
			t.Fatalf("additive set must start empty, %q was selected", opt.Key)
		}
	}
}

func TestSelectExclusiveReplaces(t *testing.T) {
	sel := NewSelection(fixtureCategories())
	sel.SelectExclusive("cat-license", "opt-five")
	key, _ := sel.Exclusive("cat-license")
	if key != "opt-five" {
		t.Fatalf("expected opt-five, got %q", key)
	}
	sel.SelectExclusive("cat-license", "opt-unlimited")
	key, _ = sel.Exclusive("cat-license")
	if key != "opt-unlimited" {
		t.Fatalf("expected opt-unlimited, got %q", key)
	}
}

func TestToggleAdditiveSymmetry(t *testing.T) {
	sel := NewSelection(fixtureCategories())
	sel.ToggleAdditive("cat-extras", "opt-install")
	if !sel.AdditiveSelected("cat-extras", "opt-install") {
		t.Fatal("toggle on failed")
	}
	sel.ToggleAdditive("cat-extras", "opt-install")
	if sel.AdditiveSelected("cat-extras", "opt-install") {
		t.Fatal("double toggle must return to the original state")
	}
}

func TestLinesSnapshot(t *testing.T) {
	cats := fixtureCategories()
	sel := NewSelection(cats)
	sel.SelectExclusive("cat-license", "opt-five")
	sel.ToggleAdditive("cat-extras", "opt-install")

	lines := sel.Lines(cats)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Category != "License" || lines[0].Options[0] != "Five Sites" {
		t.Fatalf("unexpected exclusive line: %+v", lines[0])
	}
	if lines[1].Category != "Additional Services" || lines[1].Options[0] != "Installation" {
		t.Fatalf("unexpected additive line: %+v", lines[1])
	}
}

func TestLinesSkipsEmptyAdditiveAndUnknownKeys(t *testing.T) {
	cats := fixtureCategories()
	sel := NewSelection(cats)
	sel.SelectExclusive("cat-license", "opt-missing")

	lines := sel.Lines(cats)
	if len(lines) != 0 {
		t.Fatalf("expected no lines, got %+v", lines)
	}
}
