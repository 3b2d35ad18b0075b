package order

import (
	"errors"
	"time"

	"tableorder/internal/restaurant"

	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyTerminal = errors.New("order already delivered")
	ErrOrderNotFound   = errors.New("order not found")
	ErrDuplicateOrder  = errors.New("order id already taken")
	ErrStatusConflict  = errors.New("order status changed concurrently")
)

type Status string

const (
	StatusReceived  Status = "received"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
)

// Stages lists the statuses in the only order an order may move through.
var Stages = []Status{StatusReceived, StatusPreparing, StatusReady, StatusDelivered}

var labels = map[Status]string{
	StatusReceived:  "Order Received",
	StatusPreparing: "Preparing Your Order",
	StatusReady:     "Ready to Serve",
	StatusDelivered: "Delivered to Table",
}

// Index is the position in Stages, or -1 for an unknown status.
func (s Status) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Status) Valid() bool { return s.Index() >= 0 }

func (s Status) Label() string { return labels[s] }

func (s Status) IsTerminal() bool { return s == StatusDelivered }

// Next is the single step forward. There is no skipping and no way back.
func (s Status) Next() (Status, error) {
	i := s.Index()
	if i < 0 {
		return "", errors.New("unknown order status: " + string(s))
	}
	if s.IsTerminal() {
		return "", ErrAlreadyTerminal
	}
	return Stages[i+1], nil
}

// Progress is the share of stages completed: 0, 33.33, 66.67, 100.
func (s Status) Progress() decimal.Decimal {
	i := s.Index()
	if i < 0 {
		return decimal.Zero
	}
	last := int64(len(Stages) - 1)
	return decimal.NewFromInt(int64(i) * 100).Div(decimal.NewFromInt(last)).Round(2)
}

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentCash   PaymentMethod = "cash"
	PaymentMobile PaymentMethod = "mobile"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCard, PaymentCash, PaymentMobile:
		return true
	}
	return false
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Line is a frozen copy of a cart line taken at checkout.
type Line struct {
	ItemID    int               `json:"item_id"`
	Name      string            `json:"name"`
	Options   map[string]string `json:"options,omitempty"`
	Quantity  int               `json:"quantity"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
	Total     decimal.Decimal   `json:"total"`
}

// Order is immutable once placed, apart from Status and UpdatedAt.
type Order struct {
	ID                  int              `json:"id"`
	Table               restaurant.Table `json:"table"`
	Contact             Contact          `json:"contact"`
	PaymentMethod       PaymentMethod    `json:"payment_method"`
	Lines               []Line           `json:"lines"`
	Subtotal            decimal.Decimal  `json:"subtotal"`
	Tax                 decimal.Decimal  `json:"tax"`
	Total               decimal.Decimal  `json:"total"`
	SpecialInstructions string           `json:"special_instructions,omitempty"`
	Status              Status           `json:"status"`
	EstimatedMinutes    int              `json:"estimated_minutes"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// ItemCount is the sum of line quantities.
func (o *Order) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

func (o *Order) clone() *Order {
	cp := *o
	cp.Lines = make([]Line, len(o.Lines))
	for i, l := range o.Lines {
		if l.Options != nil {
			opts := make(map[string]string, len(l.Options))
			for k, v := range l.Options {
				opts[k] = v
			}
			l.Options = opts
		}
		cp.Lines[i] = l
	}
	return &cp
}
