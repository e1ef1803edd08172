package pricing

// Selection tracks a buyer's in-progress option choices for one item. A
// Selection belongs to a single logical session and is not safe for
// concurrent mutation.
type Selection struct {
	exclusive map[string]string
	additive  map[string]map[string]struct{}
}

// NewSelection initialises the default selection for the given categories:
// every exclusive category starts on its first listed option (the catalog
// editor's implicit default tier), every additive category starts empty.
func NewSelection(categories []Category) *Selection {
	s := &Selection{
		exclusive: make(map[string]string),
		additive:  make(map[string]map[string]struct{}),
	}
	for _, cat := range categories {
		switch cat.EffectiveMode() {
		case ModeAdditive:
			s.additive[cat.Key] = make(map[string]struct{})
		default:
			if len(cat.Options) > 0 {
				s.exclusive[cat.Key] = cat.Options[0].Key
			}
		}
	}
	return s
}

// SelectExclusive replaces the chosen option of an exclusive category.
// Unknown keys are stored as-is and simply contribute nothing to totals.
func (s *Selection) SelectExclusive(categoryKey, optionKey string) {
	s.exclusive[categoryKey] = optionKey
}

// ToggleAdditive flips an option of an additive category: selected options
// are removed, unselected ones added.
func (s *Selection) ToggleAdditive(categoryKey, optionKey string) {
	set, ok := s.additive[categoryKey]
	if !ok {
		set = make(map[string]struct{})
		s.additive[categoryKey] = set
	}
	if _, selected := set[optionKey]; selected {
		delete(set, optionKey)
		return
	}
	set[optionKey] = struct{}{}
}

// Exclusive reports the chosen option key of an exclusive category.
func (s *Selection) Exclusive(categoryKey string) (string, bool) {
	key, ok := s.exclusive[categoryKey]
	return key, ok
}

// AdditiveSelected reports whether an additive option is currently toggled on.
func (s *Selection) AdditiveSelected(categoryKey, optionKey string) bool {
	set, ok := s.additive[categoryKey]
	if !ok {
		return false
	}
	_, selected := set[optionKey]
	return selected
}

// Line is a human-readable snapshot entry: one category and the names of its
// chosen options. Consumed by the quotation exporter and the UI.
type Line struct {
	Category string   `json:"category"`
	Options  []string `json:"options"`
}

// Lines renders the selection against the given categories in display order.
// Exclusive categories always yield a line when their chosen option resolves;
// additive categories only appear when at least one option is toggled on.
func (s *Selection) Lines(categories []Category) []Line {
	lines := make([]Line, 0, len(categories))
	for _, cat := range categories {
		switch cat.EffectiveMode() {
		case ModeAdditive:
			var names []string
			for _, opt := range cat.Options {
				if s.AdditiveSelected(cat.Key, opt.Key) {
					names = append(names, opt.Name)
				}
			}
			if len(names) > 0 {
				lines = append(lines, Line{Category: cat.Title, Options: names})
			}
		default:
			key, ok := s.Exclusive(cat.Key)
			if !ok {
				continue
			}
			if opt, found := cat.Option(key); found {
				lines = append(lines, Line{Category: cat.Title, Options: []string{opt.Name}})
			}
		}
	}
	return lines
}
