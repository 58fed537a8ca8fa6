package areamap

// Centroid returns the area-weighted centre of the polygon using the
// shoelace formula.
//
// The ring is closed before summing: when the polygon has exactly three
// vertices, or its last vertex differs from the first, the first vertex is
// appended. A ring that already repeats its first vertex is used as given.
//
// It reports false when the signed area is zero (collinear or
// self-cancelling outlines).
func (p Polygon) Centroid() (Point, bool) {
	n := len(p.Vertices)
	if n == 0 {
		return Point{}, false
	}

	ring := make([]Point, n, n+1)
	copy(ring, p.Vertices)
	if n == 3 || ring[n-1] != ring[0] {
		ring = append(ring, ring[0])
	} else {
		n--
	}

	var area, cx, cy float64
	for i := 0; i < n; i++ {
		s := ring[i].X*ring[i+1].Y - ring[i+1].X*ring[i].Y
		area += s
		cx += (ring[i].X + ring[i+1].X) * s
		cy += (ring[i].Y + ring[i+1].Y) * s
	}
	if area == 0 {
		return Point{}, false
	}

	area /= 2
	return Point{X: cx / (6 * area), Y: cy / (6 * area)}, true
}
