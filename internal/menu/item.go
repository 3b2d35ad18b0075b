package menu

import "github.com/shopspring/decimal"

// Item is an immutable catalog entry.
type Item struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image,omitempty"`
	Allergens   []string        `json:"allergens,omitempty"`
	Nutrition   *Nutrition      `json:"nutrition_info,omitempty"`
	Options     []OptionGroup   `json:"options,omitempty"`
}

func (i Item) Group(name string) (OptionGroup, bool) {
	for _, g := range i.Options {
		if g.Name == name {
			return g, true
		}
	}
	return OptionGroup{}, false
}

// clone copies the slices so callers cannot mutate the catalog.
func (i Item) clone() Item {
	out := i
	if i.Allergens != nil {
		out.Allergens = append([]string(nil), i.Allergens...)
	}
	if i.Nutrition != nil {
		n := *i.Nutrition
		out.Nutrition = &n
	}
	if i.Options != nil {
		out.Options = make([]OptionGroup, len(i.Options))
		for k, g := range i.Options {
			out.Options[k] = OptionGroup{
				Name:    g.Name,
				Choices: append([]OptionChoice(nil), g.Choices...),
			}
		}
	}
	return out
}
