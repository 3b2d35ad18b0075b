package menu

import "github.com/shopspring/decimal"

// OptionChoice is one selectable value inside an option group.
// PriceDelta may be negative (e.g. a smaller size).
type OptionChoice struct {
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// OptionGroup is a named set of mutually exclusive choices, e.g. "Size".
type OptionGroup struct {
	Name    string         `json:"name"`
	Choices []OptionChoice `json:"choices"`
}

func (g OptionGroup) Choice(name string) (OptionChoice, bool) {
	for _, c := range g.Choices {
		if c.Name == name {
			return c, true
		}
	}
	return OptionChoice{}, false
}

type Nutrition struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// MenuDocument is the JSON shape of a menu fetched from object storage.
type MenuDocument struct {
	Version string `json:"version"`
	Items   []Item `json:"items"`
}
