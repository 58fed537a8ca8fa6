package imaging

import (
	"math"

	"github.com/ironsheep/image-map-mcp/internal/areamap"
)

// DistanceResult contains measurement information between two offsets.
type DistanceResult struct {
	From                  areamap.Offset `json:"from"`
	To                    areamap.Offset `json:"to"`
	DistancePixels        float64        `json:"distance_pixels"`
	DeltaX                float64        `json:"delta_x"`
	DeltaY                float64        `json:"delta_y"`
	AngleDegrees          float64        `json:"angle_degrees"`
	DistancePercentWidth  float64        `json:"distance_percent_width,omitempty"`
	DistancePercentHeight float64        `json:"distance_percent_height,omitempty"`
}

// MeasureDistance calculates the distance from one offset to another.
//
// The angle is measured clockwise from the positive X axis, so 90 points
// down. When size is non-nil the distance is also expressed as a
// percentage of its width and height.
func MeasureDistance(from, to areamap.Offset, size *areamap.Size) *DistanceResult {
	dx := to.Left - from.Left
	dy := to.Top - from.Top
	distance := math.Hypot(dx, dy)

	angle := math.Atan2(dy, dx) * 180 / math.Pi

	res := &DistanceResult{
		From:           from,
		To:             to,
		DistancePixels: round(distance, 2),
		DeltaX:         round(dx, 2),
		DeltaY:         round(dy, 2),
		AngleDegrees:   round(angle, 1),
	}

	if size != nil {
		if size.Width > 0 {
			res.DistancePercentWidth = round(distance/size.Width*100, 1)
		}
		if size.Height > 0 {
			res.DistancePercentHeight = round(distance/size.Height*100, 1)
		}
	}

	return res
}

// round rounds v to the given number of decimal places.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
