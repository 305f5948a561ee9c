package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dkurek/ofertownik/internal/model"
)

const xlsxSheetName = "Kosztorys"

// ExportXLSX writes the summary's cost lines and totals to an Excel
// workbook with one sheet.
func ExportXLSX(path string, summary model.CostSummary) error {
	if len(summary.Items) == 0 {
		return fmt.Errorf("no cost items to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for col, title := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheetName, cell, title); err != nil {
			return err
		}
	}

	row := 2
	for i, it := range summary.Items {
		values := []interface{}{
			i + 1, it.Name, it.Quantity, it.Unit, it.PriceUnitNet,
			it.VATRate, it.TotalNet, it.TotalGross, string(it.Category),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(xlsxSheetName, cell, v); err != nil {
				return err
			}
		}
		row++
	}

	row++
	if summary.Transport.Net > 0 {
		if err := writeSummaryRow(f, row, "Transport", summary.Transport.Net, summary.Transport.Gross); err != nil {
			return err
		}
		row++
	}
	if err := writeSummaryRow(f, row, "Razem", summary.GrandTotal.Net, summary.GrandTotal.Gross); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSummaryRow(f *excelize.File, row int, label string, net, gross float64) error {
	cells := map[int]interface{}{2: label, 7: net, 8: gross}
	for col, v := range cells {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}
