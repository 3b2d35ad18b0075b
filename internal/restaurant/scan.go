package restaurant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidQRCode = errors.New("this QR code doesn't contain restaurant information")

// ParseQR turns a scanned payload like {"id":"r1","name":"Luigi's","tableNumber":7}
// into a Table. Payloads that are not JSON at all fall back to the demo
// restaurant; JSON without a truthy id or name is rejected. Empty strings,
// zero, false and null count as missing.
func ParseQR(payload string) (Table, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return DemoTable(), nil
	}

	fields, ok := raw.(map[string]any)
	if !ok {
		return Table{}, ErrInvalidQRCode
	}

	table := Table{
		RestaurantID:   scalar(fields["id"]),
		RestaurantName: scalar(fields["name"]),
		TableNumber:    scalar(fields["tableNumber"]),
	}
	if table.RestaurantID == "" || table.RestaurantName == "" {
		return Table{}, ErrInvalidQRCode
	}
	if table.TableNumber == "" {
		table.TableNumber = DefaultTableNumber
	}

	return table, nil
}

func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		if f, err := x.Float64(); err == nil && f == 0 {
			return ""
		}
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return ""
	default:
		return fmt.Sprint(x)
	}
}
