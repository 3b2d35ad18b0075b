package menu

import (
	"context"
	"errors"
	"log"
)

// AllCategories is the pseudo-category that disables filtering.
const AllCategories = "All"

var ErrItemNotFound = errors.New("menu item not found")

// Service is the read-only catalog. It never mutates after construction.
type Service struct {
	items []Item
	byID  map[int]int
}

func NewService(ctx context.Context, source Source) (*Service, error) {
	items, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := ValidateItems(items); err != nil {
		return nil, err
	}

	s := &Service{
		items: make([]Item, len(items)),
		byID:  make(map[int]int, len(items)),
	}
	for i, item := range items {
		s.items[i] = item.clone()
		s.byID[item.ID] = i
	}

	log.Printf("[MENU] loaded %d items in %d categories", len(s.items), len(s.Categories())-1)
	return s, nil
}

// Items returns the whole catalog in menu order.
func (s *Service) Items() []Item {
	return s.Filter(AllCategories)
}

// Categories lists "All" followed by each distinct category in menu order.
func (s *Service) Categories() []string {
	seen := make(map[string]bool)
	out := []string{AllCategories}
	for _, item := range s.items {
		if seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		out = append(out, item.Category)
	}
	return out
}

// Filter returns the items of one category; "" and "All" return everything.
func (s *Service) Filter(category string) []Item {
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if category == "" || category == AllCategories || item.Category == category {
			out = append(out, item.clone())
		}
	}
	return out
}

func (s *Service) Find(id int) (Item, error) {
	idx, ok := s.byID[id]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	return s.items[idx].clone(), nil
}
