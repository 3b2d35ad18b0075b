package restaurant

// Table is the context carried by a scanned QR code. The ordering core
// threads it through to the order and never interprets it.
type Table struct {
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	TableNumber    string `json:"table_number"`
}

// DefaultTableNumber is used when a QR code names a restaurant but no table.
const DefaultTableNumber = "1"

// DemoTable is where unreadable QR codes land so the app can still be tried out.
func DemoTable() Table {
	return Table{
		RestaurantID:   "demo123",
		RestaurantName: "Demo Restaurant",
		TableNumber:    "5",
	}
}
