package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tableorder/internal/menu"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrUnknownOption = errors.New("unknown option")

// lineNamespace seeds the name-based UUIDs used as line keys.
var lineNamespace = uuid.MustParse("5b0f3c4e-8f0e-4f57-9a39-3f2d1c6f0a11")

// Options maps an option group name to the chosen option name.
type Options map[string]string

// normalize drops empty selections and checks every choice against the item.
func (o Options) normalize(item menu.Item) (Options, error) {
	out := make(Options, len(o))
	for groupName, choiceName := range o {
		if choiceName == "" {
			continue
		}
		g, ok := item.Group(groupName)
		if !ok {
			return nil, fmt.Errorf("%w: %q has no group %q", ErrUnknownOption, item.Name, groupName)
		}
		if _, ok := g.Choice(choiceName); !ok {
			return nil, fmt.Errorf("%w: %q is not a %q choice", ErrUnknownOption, choiceName, groupName)
		}
		out[groupName] = choiceName
	}
	return out, nil
}

func (o Options) clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// LineKey identifies a line: the bare item id when no options are chosen,
// otherwise the id plus a name-based UUID of the canonical selection.
type LineKey string

func NewLineKey(itemID int, opts Options) LineKey {
	id := strconv.Itoa(itemID)
	if len(opts) == 0 {
		return LineKey(id)
	}

	groups := make([]string, 0, len(opts))
	for g := range opts {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var b strings.Builder
	b.WriteString(id)
	for _, g := range groups {
		b.WriteByte(0x1f)
		b.WriteString(g)
		b.WriteByte('=')
		b.WriteString(opts[g])
	}

	return LineKey(id + ":" + uuid.NewSHA1(lineNamespace, []byte(b.String())).String())
}

// Line is one item + selection + quantity in the cart.
// Prices are always derived from the item snapshot, never cached.
type Line struct {
	Key      LineKey   `json:"key"`
	Item     menu.Item `json:"item"`
	Options  Options   `json:"options"`
	Quantity int       `json:"quantity"`
}

// UnitPrice is the base price plus the deltas of every chosen option.
func (l Line) UnitPrice() decimal.Decimal {
	return unitPrice(l.Item, l.Options)
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) MarshalJSON() ([]byte, error) {
	type plain Line
	return json.Marshal(struct {
		plain
		UnitPrice decimal.Decimal `json:"unit_price"`
		Total     decimal.Decimal `json:"total"`
	}{
		plain:     plain(l),
		UnitPrice: l.UnitPrice(),
		Total:     l.Total(),
	})
}

func unitPrice(item menu.Item, opts Options) decimal.Decimal {
	total := item.BasePrice
	for groupName, choiceName := range opts {
		g, ok := item.Group(groupName)
		if !ok {
			continue
		}
		if c, ok := g.Choice(choiceName); ok {
			total = total.Add(c.PriceDelta)
		}
	}
	return total
}

// MaxQuantity caps a single line so merges cannot overflow.
const MaxQuantity = 99

// ClampQuantity applies the item-detail stepper rule: never below one,
// never above MaxQuantity.
func ClampQuantity(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return n
}
