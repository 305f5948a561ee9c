package geometry

// CalculateTimberVolume computes the volume in cubic meters of a batch of
// identical timber elements: quantity pieces of the given length with a
// width x height cross-section in centimeters. Negative inputs count as
// zero.
func CalculateTimberVolume(quantity int, lengthM, widthCM, heightCM float64) float64 {
	if quantity < 0 {
		quantity = 0
	}
	return float64(quantity) * clampDim(lengthM) * clampDim(widthCM) / 100.0 * clampDim(heightCM) / 100.0
}
