package areamap

import (
	"math"
	"strconv"
	"strings"
)

// ParseCoords parses an area coords attribute such as "10, 20, 30".
//
// Empty or blank tokens read as 0 and still count, so "10,10,5," has four
// values. Any other token must be a finite number; if one is not, the
// whole list is rejected and nil is returned, which NewShape treats as too
// short to describe a shape. A blank attribute has no coordinates.
func ParseCoords(s string) []float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	fields := strings.Split(s, ",")
	coords := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			coords = append(coords, 0)
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		coords = append(coords, v)
	}
	return coords
}

// FormatCoords renders coords in the form accepted by ParseCoords, using
// the shortest representation of each value.
func FormatCoords(coords []float64) string {
	parts := make([]string, len(coords))
	for i, v := range coords {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// ScaleCoords maps coords of the given kind from one image size to another,
// multiplying X values by sx and Y values by sy. A circle radius is scaled
// by the mean of the two factors. The input is not modified.
func ScaleCoords(kind ShapeKind, coords []float64, sx, sy float64) []float64 {
	if coords == nil {
		return nil
	}
	out := make([]float64, len(coords))
	for i, v := range coords {
		switch {
		case kind == KindCircle && i == 2:
			out[i] = v * (sx + sy) / 2
		case i%2 == 0:
			out[i] = v * sx
		default:
			out[i] = v * sy
		}
	}
	return out
}
