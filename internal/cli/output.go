package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/splittab/splittab-backend/internal/domain/bill"
	"github.com/splittab/splittab-backend/internal/domain/engine"
	"github.com/splittab/splittab-backend/internal/export"
	"github.com/splittab/splittab-backend/internal/infrastructure/storage"
)

// PrintBillList prints one line per stored bill.
func PrintBillList(w io.Writer, result *storage.BillListResult) {
	if result.TotalCount == 0 {
		fmt.Fprintln(w, "No bills stored.")
		return
	}
	for _, b := range result.Bills {
		summary := engine.Summary(*b)
		title := b.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%s  %-24s %-7s people=%d items=%d total=$%.2f\n",
			b.ID, title, b.Status, len(b.People), len(b.Items), summary.Total)
	}
	if result.TotalCount > len(result.Bills) {
		fmt.Fprintf(w, "... and %d more\n", result.TotalCount-len(result.Bills))
	}
}

// PrintBill writes one bill's summary in the requested format.
func PrintBill(w io.Writer, b *bill.Bill, format string) error {
	switch format {
	case "csv":
		return export.WriteCSV(w, *b)
	case "text", "":
		_, err := io.WriteString(w, export.SummaryText(*b))
		return err
	default:
		return fmt.Errorf("unknown format %q (want text or csv)", format)
	}
}

// Fatalf prints an error to stderr and exits non-zero.
func Fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "billtool: "+format+"\n", args...)
	os.Exit(1)
}
