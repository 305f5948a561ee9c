// Package geometry provides the roof, gutter, chimney and flashing
// calculators: pure functions mapping measured dimensions to derived
// material quantities.
//
// Financial validation elsewhere is strict, but these calculators are
// deliberately permissive about degenerate input: a zero-length eave is a
// valid roof with no gutter, so zero and negative dimensions yield zero
// quantities instead of errors. Angles outside their valid domain are
// still rejected, since no quantity can be derived from them.
package geometry

import (
	"fmt"
	"math"
)

// DegreesToRadians converts an angle from degrees to radians.
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// SlantLength computes the slope length (e.g. of a rafter) from its
// horizontal projection and the pitch angle. The angle must lie in
// [0, 90): at 90 degrees the slant length diverges.
func SlantLength(horizontal, angleDegrees float64) (float64, error) {
	if angleDegrees < 0 || angleDegrees >= 90 {
		return 0, fmt.Errorf("roof angle must be in [0, 90) degrees, got %g", angleDegrees)
	}
	if angleDegrees == 0 {
		return horizontal, nil
	}
	return horizontal / math.Cos(DegreesToRadians(angleDegrees)), nil
}

// HorizontalLength is the inverse of SlantLength: the horizontal
// projection of a slope length at the given pitch angle.
func HorizontalLength(slant, angleDegrees float64) (float64, error) {
	if angleDegrees < 0 || angleDegrees > 90 {
		return 0, fmt.Errorf("roof angle must be in [0, 90] degrees, got %g", angleDegrees)
	}
	return slant * math.Cos(DegreesToRadians(angleDegrees)), nil
}

// RoofResult holds the derived lengths and area for one roof shape.
// Lengths are in meters, the area in square meters.
type RoofResult struct {
	EaveLength        float64 `json:"eave_length_m"`         // Total gutter-bearing edge
	RidgeLength       float64 `json:"ridge_length_m"`        // Ridge and hip cap runs
	BargeLength       float64 `json:"barge_length_m"`        // Gable-end barge boards
	ValleyLength      float64 `json:"valley_length_m"`       // Valley runs
	RoofArea          float64 `json:"roof_area_m2"`          // Total covering area
	SlantRafterLength float64 `json:"slant_rafter_length_m"` // Reference rafter length
	AngleDeg          float64 `json:"roof_angle_deg"`
}

// CalculateSingleSlopeRoof computes the quantities for a lean-to roof.
//
// When realDimensions is true, width is the as-measured slope width and no
// angle is needed. Otherwise width is the horizontal projection and the
// pitch angle converts it to the slope width.
func CalculateSingleSlopeRoof(length, width, angleDegrees float64, realDimensions bool) (RoofResult, error) {
	length = clampDim(length)
	width = clampDim(width)

	if realDimensions {
		return RoofResult{
			EaveLength:        length,
			BargeLength:       2 * width,
			RoofArea:          length * width,
			SlantRafterLength: width,
		}, nil
	}

	slant, err := SlantLength(width, angleDegrees)
	if err != nil {
		return RoofResult{}, err
	}
	return RoofResult{
		EaveLength:        length,
		BargeLength:       2 * slant,
		RoofArea:          length * slant,
		SlantRafterLength: slant,
		AngleDeg:          angleDegrees,
	}, nil
}

// CalculateGableRoof computes the quantities for a symmetric gable roof.
// The two slopes share a ridge of the roof's length; width spans the full
// building, so each slope projects over half of it.
func CalculateGableRoof(length, width, angleDegrees float64, realDimensions bool) (RoofResult, error) {
	length = clampDim(length)
	width = clampDim(width)

	if realDimensions {
		// width is the as-measured rafter length of one slope.
		return RoofResult{
			EaveLength:        2 * length,
			RidgeLength:       length,
			BargeLength:       4 * width,
			RoofArea:          2 * length * width,
			SlantRafterLength: width,
		}, nil
	}

	slant, err := SlantLength(width/2, angleDegrees)
	if err != nil {
		return RoofResult{}, err
	}
	return RoofResult{
		EaveLength:        2 * length,
		RidgeLength:       length,
		BargeLength:       4 * slant,
		RoofArea:          2 * length * slant,
		SlantRafterLength: slant,
		AngleDeg:          angleDegrees,
	}, nil
}

// CalculateHipRoof computes the quantities for a hip roof. Length and
// width are always the horizontal base dimensions and the pitch angle is
// always required, since the hip geometry cannot be recovered from slope
// measurements alone.
func CalculateHipRoof(length, width, angleDegrees float64) (RoofResult, error) {
	length = clampDim(length)
	width = clampDim(width)

	if angleDegrees < 0 || angleDegrees >= 90 {
		return RoofResult{}, fmt.Errorf("roof angle must be in [0, 90) degrees, got %g", angleDegrees)
	}

	// Normalize so length is the longer base side.
	if width > length {
		length, width = width, length
	}

	eave := 2 * (length + width)
	ridgeFlat := length - width

	// The hip cap's horizontal projection runs diagonally across a square
	// with side width/2.
	hipProj := math.Sqrt(2) * (width / 2)
	hipSlant, err := SlantLength(hipProj, angleDegrees)
	if err != nil {
		return RoofResult{}, err
	}

	rafter, err := SlantLength(width/2, angleDegrees)
	if err != nil {
		return RoofResult{}, err
	}

	// Two triangular end faces plus two trapezoid faces.
	areaTriangles := 2 * (0.5 * width * rafter)
	areaTrapezoids := 2 * (0.5 * (ridgeFlat + length) * rafter)

	return RoofResult{
		EaveLength:        eave,
		RidgeLength:       4*hipSlant + ridgeFlat,
		RoofArea:          areaTriangles + areaTrapezoids,
		SlantRafterLength: rafter,
		AngleDeg:          angleDegrees,
	}, nil
}

// clampDim treats negative dimensions as the zero degenerate case.
func clampDim(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
