package menu

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyMenu = errors.New("menu has no items")

// ValidateItems checks a catalog before it is served.
func ValidateItems(items []Item) error {
	if len(items) == 0 {
		return ErrEmptyMenu
	}

	seen := make(map[int]bool, len(items))
	for _, item := range items {
		if seen[item.ID] {
			return fmt.Errorf("duplicate menu item id %d", item.ID)
		}
		seen[item.ID] = true

		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("menu item %d has no name", item.ID)
		}
		if item.BasePrice.IsNegative() {
			return fmt.Errorf("menu item %d has a negative price", item.ID)
		}

		groups := make(map[string]bool, len(item.Options))
		for _, g := range item.Options {
			if strings.TrimSpace(g.Name) == "" {
				return fmt.Errorf("menu item %d has an unnamed option group", item.ID)
			}
			if groups[g.Name] {
				return fmt.Errorf("menu item %d repeats option group %q", item.ID, g.Name)
			}
			groups[g.Name] = true

			choices := make(map[string]bool, len(g.Choices))
			for _, c := range g.Choices {
				if choices[c.Name] {
					return fmt.Errorf("menu item %d repeats choice %q in %q", item.ID, c.Name, g.Name)
				}
				choices[c.Name] = true
			}
		}
	}

	return nil
}
