// Package export renders estimates to the document formats handed to
// clients: CSV, XLSX and the printable PDF offer.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/dkurek/ofertownik/internal/model"
)

// csvHeader is the Polish column layout of the cost table export.
var csvHeader = []string{"Lp", "Nazwa", "Ilość", "JM", "Cena netto", "VAT %", "Wartość netto", "Wartość brutto", "Kategoria"}

// ExportCSV writes the summary's cost lines as a semicolon-delimited CSV
// file, the layout spreadsheet software expects in a Polish locale.
func ExportCSV(path string, summary model.CostSummary) error {
	if len(summary.Items) == 0 {
		return fmt.Errorf("no cost items to export")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, it := range summary.Items {
		row := []string{
			fmt.Sprintf("%d", i+1),
			it.Name,
			fmt.Sprintf("%.3f", it.Quantity),
			it.Unit,
			fmt.Sprintf("%.2f", it.PriceUnitNet),
			fmt.Sprintf("%d", it.VATRate),
			fmt.Sprintf("%.2f", it.TotalNet),
			fmt.Sprintf("%.2f", it.TotalGross),
			string(it.Category),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
