package geometry

import (
	"fmt"
	"math"
)

// RoofCovering identifies the covering type around a chimney, which
// decides whether a felt apron and clamping strip are needed.
type RoofCovering string

const (
	CoveringSheetMetal RoofCovering = "blacha"
	CoveringTile       RoofCovering = "dachówka"
	CoveringFelt       RoofCovering = "papa"
)

// Standard flashing sheet dimensions in meters.
const (
	flashingSheetWidth  = 1.25
	flashingSheetLength = 2.50
)

// Developed widths and overlaps used by the chimney flashing layout, in
// meters.
const (
	lowerFlashingWidth = 0.5  // developed width of the base apron
	claddingOverlap    = 0.20 // side cladding overlap above the chimney top
	capOverhang        = 0.05 // chimney cap overhang per edge
	feltApronWidth     = 0.5  // developed width of the felt apron
)

// ChimneyFlashingResult holds the flashing material quantities for a set
// of identical chimneys.
type ChimneyFlashingResult struct {
	MetalFlashingSurface   float64 `json:"total_metal_flashing_surface_m2"`
	MetalSheetsFlashing    int     `json:"num_metal_sheets_flashing"`
	CapSurface             float64 `json:"total_chimney_cap_surface_m2"`
	MetalSheetsCap         int     `json:"num_metal_sheets_cap"`
	FeltFlashingSurface    float64 `json:"total_felt_flashing_surface_m2"`
	ClampingStripLength    float64 `json:"total_clamping_strip_length_m"`
	SingleChimneyPerimeter float64 `json:"single_chimney_perimeter"`
}

// CalculateChimneyFlashings computes the sheet metal, cap, felt apron and
// clamping strip quantities for chimneys of the given footprint and
// height above the roof. Sheet-metal and tile coverings seal without a
// felt apron, so those quantities drop to zero for them.
func CalculateChimneyFlashings(width, length, heightAboveRoof, roofAngleDegrees float64, covering RoofCovering, chimneys int) (ChimneyFlashingResult, error) {
	if roofAngleDegrees < 0 || roofAngleDegrees > 90 {
		return ChimneyFlashingResult{}, fmt.Errorf("roof angle must be in [0, 90] degrees, got %g", roofAngleDegrees)
	}

	width = clampDim(width)
	length = clampDim(length)
	heightAboveRoof = clampDim(heightAboveRoof)
	if chimneys < 0 {
		chimneys = 0
	}
	if width == 0 || length == 0 || heightAboveRoof == 0 || chimneys == 0 {
		return ChimneyFlashingResult{}, nil
	}

	perimeter := 2 * (width + length)
	n := float64(chimneys)

	lowerFlashing := perimeter * lowerFlashingWidth
	cladding := perimeter * (heightAboveRoof + claddingOverlap)
	cap := (width + 2*capOverhang) * (length + 2*capOverhang)

	res := ChimneyFlashingResult{
		MetalFlashingSurface:   (lowerFlashing + cladding) * n,
		CapSurface:             cap * n,
		FeltFlashingSurface:    perimeter * feltApronWidth * n,
		ClampingStripLength:    perimeter * n,
		SingleChimneyPerimeter: perimeter,
	}

	sheetArea := flashingSheetWidth * flashingSheetLength
	res.MetalSheetsFlashing = int(math.Ceil(res.MetalFlashingSurface / sheetArea))
	res.MetalSheetsCap = int(math.Ceil(res.CapSurface / sheetArea))

	if covering == CoveringSheetMetal || covering == CoveringTile {
		res.FeltFlashingSurface = 0
		res.ClampingStripLength = 0
	}
	return res, nil
}

// ChimneyInsulationResult holds the insulation and reinforcing mesh
// surfaces for a set of chimneys.
type ChimneyInsulationResult struct {
	InsulationSurface float64 `json:"total_insulation_surface_m2"`
	MeshSurface       float64 `json:"total_mesh_surface_m2"`
}

// CalculateChimneyInsulation computes the side surface to insulate and
// the matching mesh-with-adhesive surface. Degenerate dimensions yield a
// zero result.
func CalculateChimneyInsulation(width, length, heightAboveRoof float64, chimneys int) ChimneyInsulationResult {
	if width <= 0 || length <= 0 || heightAboveRoof <= 0 || chimneys <= 0 {
		return ChimneyInsulationResult{}
	}
	side := 2 * (width + length) * heightAboveRoof
	total := side * float64(chimneys)
	return ChimneyInsulationResult{
		InsulationSurface: total,
		MeshSurface:       total,
	}
}
