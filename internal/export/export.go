// Package export turns engine output into shareable text and CSV.
//
// The numbers come straight from the allocation engine and are already
// cent-accurate; this package only formats them to two decimal places.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/splittab/splittab-backend/internal/domain/bill"
	"github.com/splittab/splittab-backend/internal/domain/engine"
)

// csvHeader is the column layout for per-person summary rows.
var csvHeader = []string{"person", "subtotal", "tax", "tip", "discount", "total"}

// SummaryRows builds one CSV row per person plus a trailing bill-total row.
func SummaryRows(b bill.Bill) [][]string {
	summary := engine.Summary(b)

	names := make(map[string]string, len(b.People))
	for _, p := range b.People {
		names[p.ID] = p.Name
	}

	rows := make([][]string, 0, len(summary.PersonTotals)+1)
	for _, pt := range summary.PersonTotals {
		name := names[pt.PersonID]
		if name == "" {
			name = pt.PersonID
		}
		rows = append(rows, []string{
			name,
			money(pt.Subtotal),
			money(pt.Tax),
			money(pt.Tip),
			money(pt.Discount),
			money(pt.Total),
		})
	}
	rows = append(rows, []string{
		"Total",
		money(summary.Subtotal),
		money(summary.Tax),
		money(summary.Tip),
		money(summary.Discount),
		money(summary.Total),
	})
	return rows
}

// WriteCSV writes the per-person summary as CSV.
func WriteCSV(w io.Writer, b bill.Bill) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range SummaryRows(b) {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// SummaryText renders a plain-text summary suitable for sharing in chat.
func SummaryText(b bill.Bill) string {
	summary := engine.Summary(b)

	names := make(map[string]string, len(b.People))
	for _, p := range b.People {
		names[p.ID] = p.Name
	}

	var sb strings.Builder
	title := b.Title
	if title == "" {
		title = "Bill"
	}
	fmt.Fprintf(&sb, "%s\n%s\n", title, strings.Repeat("-", len(title)))

	for _, pt := range summary.PersonTotals {
		name := names[pt.PersonID]
		if name == "" {
			name = pt.PersonID
		}
		fmt.Fprintf(&sb, "%s owes $%s\n", name, money(pt.Total))
	}

	fmt.Fprintf(&sb, "\nSubtotal: $%s\n", money(summary.Subtotal))
	if summary.Tax != 0 {
		fmt.Fprintf(&sb, "Tax: $%s\n", money(summary.Tax))
	}
	if summary.Tip != 0 {
		fmt.Fprintf(&sb, "Tip: $%s\n", money(summary.Tip))
	}
	if summary.Discount != 0 {
		fmt.Fprintf(&sb, "Discount: -$%s\n", money(summary.Discount))
	}
	fmt.Fprintf(&sb, "Total: $%s\n", money(summary.Total))

	return sb.String()
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
