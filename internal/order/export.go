package order

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"Order", "Restaurant", "Table", "Status", "Payment",
	"Customer", "Email", "Phone", "Items",
	"Subtotal", "Tax", "Total", "Instructions", "CreatedAt", "UpdatedAt",
}

// WriteSpreadsheet writes one row per order to an xlsx workbook.
func WriteSpreadsheet(w io.Writer, orders []*Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()

		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.Table.RestaurantName)
		row.AddCell().SetValue(o.Table.TableNumber)
		row.AddCell().SetValue(o.Status.Label())
		row.AddCell().SetValue(string(o.PaymentMethod))
		row.AddCell().SetValue(o.Contact.Name)
		row.AddCell().SetValue(o.Contact.Email)
		row.AddCell().SetValue(o.Contact.Phone)
		row.AddCell().SetValue(describeLines(o.Lines))
		row.AddCell().SetValue(o.Subtotal.StringFixed(2))
		row.AddCell().SetValue(o.Tax.StringFixed(2))
		row.AddCell().SetValue(o.Total.StringFixed(2))
		row.AddCell().SetValue(o.SpecialInstructions)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(o.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}

// describeLines renders "2x Margherita Pizza (Size: Medium, Crust: Thin)".
func describeLines(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		var b strings.Builder
		b.WriteString(strconv.Itoa(l.Quantity))
		b.WriteString("x ")
		b.WriteString(l.Name)

		if len(l.Options) > 0 {
			groups := make([]string, 0, len(l.Options))
			for g := range l.Options {
				groups = append(groups, g)
			}
			sort.Strings(groups)
			for i, g := range groups {
				groups[i] = g + ": " + l.Options[g]
			}
			b.WriteString(" (")
			b.WriteString(strings.Join(groups, ", "))
			b.WriteString(")")
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "; ")
}
