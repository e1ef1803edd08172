package pricing

import "strings"

// Mode determines the selection semantics of a pricing category.
type Mode string

const (
	// ModeExclusive means the buyer picks exactly one option (radio semantics).
	ModeExclusive Mode = "exclusive"
	// ModeAdditive means the buyer picks zero or more options, each adding to
	// the total independently (checkbox semantics).
	ModeAdditive Mode = "additive"
)

// Option is a single priced choice inside a category. Keys are stable
// identifiers generated at catalog write time; slice order is display order
// only.
type Option struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// Category groups the options of one pricing dimension of an item.
type Category struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Mode    Mode     `json:"mode"`
	Options []Option `json:"options"`
}

// ModeFromTitle classifies a category by the legacy naming convention: titles
// containing "additional" (case-insensitive) are additive, everything else is
// exclusive. Kept only to backfill records that predate the stored Mode field.
func ModeFromTitle(title string) Mode {
	if strings.Contains(strings.ToLower(title), "additional") {
		return ModeAdditive
	}
	return ModeExclusive
}

// EffectiveMode returns the stored mode, falling back to the title heuristic
// for legacy records.
func (c Category) EffectiveMode() Mode {
	switch c.Mode {
	case ModeExclusive, ModeAdditive:
		return c.Mode
	}
	return ModeFromTitle(c.Title)
}

// Option returns the option with the given key, if present.
func (c Category) Option(key string) (Option, bool) {
	for _, opt := range c.Options {
		if opt.Key == key {
			return opt, true
		}
	}
	return Option{}, false
}
