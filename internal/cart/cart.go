package cart

import (
	"errors"

	"tableorder/internal/menu"
	"tableorder/internal/pricing"

	"github.com/shopspring/decimal"
)

var ErrLineNotFound = errors.New("cart line not found")

type ChangeOp string

const (
	OpAdd    ChangeOp = "add"
	OpUpdate ChangeOp = "update"
	OpRemove ChangeOp = "remove"
	OpClear  ChangeOp = "clear"
)

// Change is delivered to subscribers after every mutation.
type Change struct {
	Op       ChangeOp `json:"op"`
	Key      LineKey  `json:"key,omitempty"`
	Quantity int      `json:"quantity,omitempty"`
}

// Cart is not safe for concurrent use; its owner serializes access.
type Cart struct {
	lines       []Line
	subscribers map[int]func(Change)
	nextSub     int
}

func New() *Cart {
	return &Cart{subscribers: make(map[int]func(Change))}
}

// AddItem merges into an existing line with the same item and selection,
// or appends a new one. Quantities are clamped to [1, MaxQuantity] and a
// merge saturates at MaxQuantity.
func (c *Cart) AddItem(item menu.Item, selected Options, quantity int) (Line, error) {
	opts, err := selected.normalize(item)
	if err != nil {
		return Line{}, err
	}
	quantity = ClampQuantity(quantity)
	key := NewLineKey(item.ID, opts)

	if i := c.indexOf(key); i >= 0 {
		c.lines[i].Quantity = ClampQuantity(c.lines[i].Quantity + quantity)
		line := c.lines[i].clone()
		c.notify(Change{Op: OpUpdate, Key: key, Quantity: line.Quantity})
		return line, nil
	}

	line := Line{Key: key, Item: item, Options: opts, Quantity: quantity}
	c.lines = append(c.lines, line)
	c.notify(Change{Op: OpAdd, Key: key, Quantity: quantity})
	return line.clone(), nil
}

// UpdateQuantity is the cart stepper: zero or less removes the line and
// anything above MaxQuantity is capped.
func (c *Cart) UpdateQuantity(key LineKey, quantity int) error {
	i := c.indexOf(key)
	if i < 0 {
		return ErrLineNotFound
	}
	if quantity <= 0 {
		c.removeAt(i)
		return nil
	}
	quantity = ClampQuantity(quantity)
	c.lines[i].Quantity = quantity
	c.notify(Change{Op: OpUpdate, Key: key, Quantity: quantity})
	return nil
}

// RemoveLine is idempotent.
func (c *Cart) RemoveLine(key LineKey) {
	if i := c.indexOf(key); i >= 0 {
		c.removeAt(i)
	}
}

func (c *Cart) Clear() {
	if len(c.lines) == 0 {
		return
	}
	c.lines = nil
	c.notify(Change{Op: OpClear})
}

func (c *Cart) Line(key LineKey) (Line, bool) {
	if i := c.indexOf(key); i >= 0 {
		return c.lines[i].clone(), true
	}
	return Line{}, false
}

// Lines returns a snapshot in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = l.clone()
	}
	return out
}

func (c *Cart) Len() int      { return len(c.lines) }
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// ItemCount is the sum of quantities, shown on the menu badge.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Total())
	}
	return pricing.Round(sum)
}

func (c *Cart) Tax() decimal.Decimal {
	return pricing.Tax(c.Subtotal())
}

func (c *Cart) GrandTotal() decimal.Decimal {
	return pricing.GrandTotal(c.Subtotal())
}

func (c *Cart) Summary() pricing.Summary {
	return pricing.Summarize(c.Subtotal())
}

// Subscribe registers fn for change notifications and returns its cancel func.
func (c *Cart) Subscribe(fn func(Change)) func() {
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = fn
	return func() { delete(c.subscribers, id) }
}

func (c *Cart) indexOf(key LineKey) int {
	for i, l := range c.lines {
		if l.Key == key {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	key := c.lines[i].Key
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.notify(Change{Op: OpRemove, Key: key})
}

func (c *Cart) notify(change Change) {
	for _, fn := range c.subscribers {
		fn(change)
	}
}

func (l Line) clone() Line {
	l.Options = l.Options.clone()
	return l
}
