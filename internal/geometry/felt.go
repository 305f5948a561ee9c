package geometry

// RoofShape selects the felt waste factor: simple shapes cut with less
// waste than hip or irregular roofs.
type RoofShape string

const (
	ShapeSingleSlope RoofShape = "jednospadowy"
	ShapeGable       RoofShape = "dwuspadowy"
	ShapeHip         RoofShape = "kopertowy"
	ShapeIrregular   RoofShape = "niestandardowy"
)

// Felt consumption constants.
const (
	feltWasteSimple    = 1.15 // single-slope and gable roofs
	feltWasteComplex   = 1.18 // hip and irregular roofs
	deckingReplacement = 0.30 // share of decking replaced on tear-off
	primerPerM2        = 0.2  // liters of primer per m2 of concrete deck
	toppingShare       = 0.20 // share of concrete deck needing new topping
	toppingThickness   = 0.03 // topping thickness in meters
	firewallFeltLap    = 0.15 // felt lap from firewall onto the roof, meters
)

// FeltInput describes a felt-covered roof job.
type FeltInput struct {
	RoofSurface       float64   `json:"roof_surface_m2"`
	Shape             RoofShape `json:"roof_shape"`
	TearOff           bool      `json:"is_tear_off"`         // Re-roofing over an existing felt deck
	Decking           bool      `json:"is_decking"`          // Timber board deck
	OSBOnBattens      bool      `json:"is_osb_on_battens"`   // OSB deck on battens
	Concrete          bool      `json:"is_concrete"`         // Concrete deck
	ChimneyFelt       float64   `json:"chimney_felt_m2"`     // Apron surface from the chimney calculator
	FirewallLength    float64   `json:"firewall_length_m"`   // Parapet/firewall run
	FirewallHeight    float64   `json:"firewall_height_m"`
	FirewallThickness float64   `json:"firewall_thickness_m"`
}

// FeltResult holds the material quantities for a felt roof.
type FeltResult struct {
	TopFelt         float64 `json:"total_top_felt_m2"`
	UnderlayFelt    float64 `json:"total_underlay_felt_m2"`
	Decking         float64 `json:"decking_m2"`
	OSB             float64 `json:"osb_m2"`
	ConcreteTopping float64 `json:"concrete_topping_m3"`
	Primer          float64 `json:"primer_liters"`
	FirewallOSB     float64 `json:"firewall_osb_m2"`
	FirewallFelt    float64 `json:"firewall_felt_m2"`
}

// CalculateFeltRoof computes felt, substrate and firewall quantities.
// A concrete deck takes a single top layer on primer; all other decks get
// top and underlay layers. Degenerate surfaces yield a zero result.
func CalculateFeltRoof(in FeltInput) FeltResult {
	surface := clampDim(in.RoofSurface)
	chimneyFelt := clampDim(in.ChimneyFelt)
	if surface == 0 && chimneyFelt == 0 && in.FirewallLength <= 0 {
		return FeltResult{}
	}

	waste := feltWasteComplex
	if in.Shape == ShapeSingleSlope || in.Shape == ShapeGable {
		waste = feltWasteSimple
	}

	res := FeltResult{TopFelt: surface * waste}
	if !in.Concrete {
		res.UnderlayFelt = surface * waste
	}

	if in.TearOff {
		if in.Decking {
			res.Decking = surface * deckingReplacement
		} else if in.Concrete {
			res.Primer = surface * primerPerM2
			res.ConcreteTopping = surface * toppingShare * toppingThickness
		}
	} else {
		if in.Decking {
			res.Decking = surface
		} else if in.OSBOnBattens {
			res.OSB = surface
		} else if in.Concrete {
			res.Primer = surface * primerPerM2
		}
	}

	if in.FirewallLength > 0 && in.FirewallHeight > 0 && in.FirewallThickness > 0 {
		res.FirewallOSB = in.FirewallLength * in.FirewallHeight * 2
		developed := 2*in.FirewallHeight + in.FirewallThickness + firewallFeltLap
		res.FirewallFelt = in.FirewallLength * developed
	}

	res.TopFelt += chimneyFelt + res.FirewallFelt
	if res.UnderlayFelt > 0 {
		res.UnderlayFelt += chimneyFelt + res.FirewallFelt
	}
	return res
}
