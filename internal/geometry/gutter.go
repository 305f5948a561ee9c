package geometry

import "math"

// Gutter accessory spacing rules, in meters.
const (
	gutterHookSpacing    = 0.5  // one support bracket per 0.5 m of gutter run
	gutterJoinerSpacing  = 3.0  // one joiner per started 3 m of gutter run
	downpipeClampSpacing = 2.0  // one clamp per started 2 m of downpipe
	downpipeSpacing      = 10.0 // auto rule: one downpipe per started 10 m of eave
)

// GutterResult holds the derived gutter-system quantities.
type GutterResult struct {
	GutterLength   float64 `json:"total_gutter_length_m"`
	DownpipeLength float64 `json:"total_downpipe_length_m"`
	Downpipes      int     `json:"num_downpipes"`
	Hooks          int     `json:"num_gutter_hooks"`
	Connectors     int     `json:"num_gutter_connectors"`
	Outlets        int     `json:"num_downpipe_outlets"`
	Clamps         int     `json:"num_downpipe_clamps"`
	Elbows         int     `json:"num_downpipe_elbows"`
	EndCaps        int     `json:"num_end_caps"`
}

// CalculateGuttering derives the gutter run, downpipe lengths and
// accessory counts from the eave length and the drop height (eave to
// ground, i.e. the length of a single downpipe).
//
// downpipes <= 0 requests the automatic rule: one downpipe per started
// 10 m of eave, minimum 1 for any positive eave length. Each downpipe
// gets one outlet and two elbows; end caps are at least 2 for any
// positive run. Zero or negative dimensions yield zero quantities.
func CalculateGuttering(eaveLength, dropHeight float64, downpipes int) GutterResult {
	eaveLength = clampDim(eaveLength)
	dropHeight = clampDim(dropHeight)

	if downpipes <= 0 {
		if eaveLength > 0 {
			downpipes = int(math.Ceil(eaveLength / downpipeSpacing))
			if downpipes < 1 {
				downpipes = 1
			}
		} else {
			downpipes = 0
		}
	}

	downpipeLength := float64(downpipes) * dropHeight

	res := GutterResult{
		GutterLength:   eaveLength,
		DownpipeLength: downpipeLength,
		Downpipes:      downpipes,
		Outlets:        downpipes,
		Elbows:         2 * downpipes,
	}
	if eaveLength > 0 {
		res.Hooks = int(math.Ceil(eaveLength / gutterHookSpacing))
		res.Connectors = int(math.Ceil(eaveLength / gutterJoinerSpacing))
		res.EndCaps = 2
		if downpipes > res.EndCaps {
			res.EndCaps = downpipes
		}
	}
	if downpipeLength > 0 {
		res.Clamps = int(math.Ceil(downpipeLength / downpipeClampSpacing))
	}
	return res
}
