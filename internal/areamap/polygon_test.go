package areamap

import "testing"

func TestPolygonCentroid(t *testing.T) {
	tests := []struct {
		name   string
		coords []float64
		want   Point
		wantOK bool
	}{
		{"triangle", []float64{0, 0, 6, 0, 0, 6}, Point{2, 2}, true},
		{"clockwise triangle", []float64{0, 0, 0, 6, 6, 0}, Point{2, 2}, true},
		{"offset rectangle", []float64{10, 10, 30, 10, 30, 20, 10, 20}, Point{20, 15}, true},
		{"closed rectangle", []float64{10, 10, 30, 10, 30, 20, 10, 20, 10, 10}, Point{20, 15}, true},
		{"L shape", []float64{0, 0, 2, 0, 2, 1, 1, 1, 1, 2, 0, 2}, Point{5.0 / 6.0, 5.0 / 6.0}, true},
		{"collinear", []float64{0, 0, 5, 5, 10, 10}, Point{}, false},
		{"bow tie", []float64{0, 0, 10, 10, 10, 0, 0, 10}, Point{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewShape(KindPoly, tt.coords).(Polygon)
			got, ok := p.Centroid()
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("centroid: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPolygonCentroid_ClosedTriangleStillCloses(t *testing.T) {
	// Three vertices where the last repeats the first are closed again,
	// leaving a degenerate ring.
	p := Polygon{Vertices: []Point{{0, 0}, {6, 0}, {0, 0}}}
	if _, ok := p.Centroid(); ok {
		t.Error("degenerate closed triangle should have no centroid")
	}
}

func TestPolygonCentroid_DoesNotMutate(t *testing.T) {
	verts := []Point{{0, 0}, {6, 0}, {0, 6}}
	p := Polygon{Vertices: verts}
	p.Centroid()
	if len(p.Vertices) != 3 {
		t.Errorf("vertices length changed to %d", len(p.Vertices))
	}
}

func TestPolygonCentroid_Empty(t *testing.T) {
	if _, ok := (Polygon{}).Centroid(); ok {
		t.Error("empty polygon should have no centroid")
	}
}
