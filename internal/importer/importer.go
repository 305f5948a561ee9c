// Package importer provides CSV and Excel import functionality for cost
// item lists. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition in Polish and English.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dkurek/ofertownik/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.CostItem
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name     int
	Quantity int
	Unit     int
	Price    int
	VAT      int
	Category int
	Group    int
}

// headerAliases maps canonical column names to their accepted aliases
// (all lowercase).
var headerAliases = map[string][]string{
	"name":     {"nazwa", "name", "pozycja", "opis", "description"},
	"quantity": {"ilość", "ilosc", "quantity", "qty", "liczba"},
	"unit":     {"jm", "j.m.", "jednostka", "unit"},
	"price":    {"cena netto", "cena", "cena jedn.", "cena jednostkowa", "price", "price_unit_net"},
	"vat":      {"vat", "vat %", "stawka vat", "vat_rate"},
	"category": {"kategoria", "category"},
	"group":    {"grupa", "group", "dział"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row
		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name:     -1,
		Quantity: -1,
		Unit:     -1,
		Price:    -1,
		VAT:      -1,
		Category: -1,
		Group:    -1,
	}

	assign := func(role string, i int) {
		switch role {
		case "name":
			if mapping.Name == -1 {
				mapping.Name = i
			}
		case "quantity":
			if mapping.Quantity == -1 {
				mapping.Quantity = i
			}
		case "unit":
			if mapping.Unit == -1 {
				mapping.Unit = i
			}
		case "price":
			if mapping.Price == -1 {
				mapping.Price = i
			}
		case "vat":
			if mapping.VAT == -1 {
				mapping.VAT = i
			}
		case "category":
			if mapping.Category == -1 {
				mapping.Category = i
			}
		case "group":
			if mapping.Group == -1 {
				mapping.Group = i
			}
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					assign(role, i)
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: Name, Quantity, Unit, Price, VAT, Category, Group
		return ColumnMapping{
			Name:     0,
			Quantity: 1,
			Unit:     2,
			Price:    3,
			VAT:      4,
			Category: 5,
			Group:    6,
		}, false
	}

	return mapping, true
}

// parseCategory converts a category string to a model.Category value.
// It returns the category and a boolean indicating whether the string was recognized.
func parseCategory(s string) (model.Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "usługa", "usluga", "usługi", "service", "robocizna":
		return model.CategoryService, true
	case "", "materiał", "material", "materiały":
		return model.CategoryMaterial, true
	default:
		return model.CategoryMaterial, false
	}
}

// parseNumber parses a float accepting both dot and comma decimal
// separators.
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a CostItem from a row using the given column mapping.
// Returns the item, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.CostItem, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		return model.CostItem{}, fmt.Sprintf("%s: Missing item name", rowLabel), ""
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return model.CostItem{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), ""
	}
	qty, err := parseNumber(qtyStr)
	if err != nil {
		return model.CostItem{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
	}

	priceStr := getCell(row, mapping.Price)
	if priceStr == "" {
		return model.CostItem{}, fmt.Sprintf("%s: Missing price value", rowLabel), ""
	}
	price, err := parseNumber(priceStr)
	if err != nil {
		return model.CostItem{}, fmt.Sprintf("%s: Invalid price '%s'", rowLabel, priceStr), ""
	}

	if qty < 0 || price < 0 {
		return model.CostItem{}, fmt.Sprintf("%s: Quantity and price must not be negative", rowLabel), ""
	}

	var warning string

	vat := model.DefaultVATRate
	if vatStr := getCell(row, mapping.VAT); vatStr != "" {
		parsed, err := strconv.Atoi(strings.TrimSuffix(vatStr, "%"))
		if err != nil || !model.IsValidVATRate(parsed, model.DefaultVATRates) {
			warning = fmt.Sprintf("%s: Unknown VAT rate '%s', defaulting to %d%%", rowLabel, vatStr, vat)
		} else {
			vat = parsed
		}
	}

	category, ok := parseCategory(getCell(row, mapping.Category))
	if !ok && warning == "" {
		warning = fmt.Sprintf("%s: Unknown category '%s', defaulting to material", rowLabel, getCell(row, mapping.Category))
	}

	unit := getCell(row, mapping.Unit)
	if unit == "" {
		unit = "szt."
	}

	item := model.NewCostItem(name, qty, unit, price, vat, category)
	item.Group = getCell(row, mapping.Group)
	return item, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports cost items from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	result = importFromRows(records, "Line", result.Warnings)
	return result
}

// ImportCSVFromReader imports cost items from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports cost items from an Excel (.xlsx, .xls) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into cost items.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Validate that required columns were found
		missing := []string{}
		if mapping.Name == -1 {
			missing = append(missing, "Nazwa")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "Ilość")
		}
		if mapping.Price == -1 {
			missing = append(missing, "Cena netto")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: check if first row is numeric (positional mapping)
		if len(rows[0]) >= 2 {
			if _, err := parseNumber(rows[0][1]); err != nil {
				// Second column is not numeric - might be an unrecognized header
				// Skip it as a header but use positional mapping
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		item, errMsg, warning := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Items = append(result.Items, item)
	}

	return result
}
