package cart

import (
	"tableorder/internal/menu"

	"github.com/shopspring/decimal"
)

// Selection is the item-detail draft before it goes into the cart.
// Its stepper stays within [1, MaxQuantity], unlike Cart.UpdateQuantity
// which removes a line at zero.
type Selection struct {
	item     menu.Item
	options  Options
	quantity int
}

func NewSelection(item menu.Item) *Selection {
	return &Selection{item: item, options: Options{}, quantity: 1}
}

// Choose picks an option, replacing any earlier choice in the same group.
func (s *Selection) Choose(groupName, choiceName string) error {
	picked, err := Options{groupName: choiceName}.normalize(s.item)
	if err != nil {
		return err
	}
	if _, ok := picked[groupName]; !ok {
		delete(s.options, groupName)
		return nil
	}
	s.options[groupName] = choiceName
	return nil
}

func (s *Selection) Unselect(groupName string) {
	delete(s.options, groupName)
}

func (s *Selection) Increment() { s.quantity = ClampQuantity(s.quantity + 1) }

func (s *Selection) Decrement() { s.quantity = ClampQuantity(s.quantity - 1) }

func (s *Selection) SetQuantity(n int) { s.quantity = ClampQuantity(n) }

func (s *Selection) Quantity() int { return s.quantity }

func (s *Selection) Options() Options { return s.options.clone() }

func (s *Selection) Total() decimal.Decimal {
	return unitPrice(s.item, s.options).Mul(decimal.NewFromInt(int64(s.quantity)))
}

// AddTo commits the draft to a cart.
func (s *Selection) AddTo(c *Cart) (Line, error) {
	return c.AddItem(s.item, s.options, s.quantity)
}
