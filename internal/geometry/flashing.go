package geometry

import "math"

// FlashingItem is one selectable flashing run measured by the user
// (ridge cap, wall flashing, drip edge...).
type FlashingItem struct {
	Name     string  `json:"name"`
	Selected bool    `json:"selected"`
	Length   float64 `json:"length"`
	Width    float64 `json:"width"`
}

// FlashingResult holds the total sheet-metal demand for all selected
// flashings.
type FlashingResult struct {
	TotalSurface float64 `json:"total_surface_m2"`
	Sheets       int     `json:"num_sheets"`
}

// CalculateFlashingsTotal sums the developed surface of the selected
// flashing items and converts it into a count of standard sheets.
// Unselected items are skipped; negative dimensions count as zero.
func CalculateFlashingsTotal(items []FlashingItem, sheetWidth, sheetLength float64) FlashingResult {
	var total float64
	for _, it := range items {
		if !it.Selected {
			continue
		}
		total += clampDim(it.Length) * clampDim(it.Width)
	}

	sheetArea := clampDim(sheetWidth) * clampDim(sheetLength)
	res := FlashingResult{TotalSurface: total}
	if total > 0 && sheetArea > 0 {
		res.Sheets = int(math.Ceil(total / sheetArea))
	}
	return res
}
