package detection

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// edgeThreshold is the minimum grayscale step between neighbouring pixels
// that counts as an edge.
const edgeThreshold = 30

// minContourPixels discards contours too small to describe a shape.
const minContourPixels = 10

type pixel struct {
	X, Y int
}

// contour is a connected group of edge pixels with its bounding box.
// Coordinates are relative to the image origin.
type contour struct {
	pixels                 []pixel
	minX, minY, maxX, maxY int
}

func (c *contour) width() int  { return c.maxX - c.minX }
func (c *contour) height() int { return c.maxY - c.minY }

// detectEdges marks pixels whose grayscale value differs from the right or
// lower neighbour by more than edgeThreshold. The outermost row and column
// are never edges.
func detectEdges(img image.Image) ([][]bool, int, int) {
	gray := imaging.Grayscale(img)
	width, height := gray.Bounds().Dx(), gray.Bounds().Dy()

	lum := func(x, y int) float64 {
		return float64(gray.Pix[y*gray.Stride+x*4])
	}

	edges := make([][]bool, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		if y == 0 || y == height-1 {
			continue
		}
		for x := 1; x < width-1; x++ {
			c := lum(x, y)
			if math.Abs(c-lum(x+1, y)) > edgeThreshold || math.Abs(c-lum(x, y+1)) > edgeThreshold {
				edges[y][x] = true
			}
		}
	}

	return edges, width, height
}

// findContours groups 8-connected edge pixels.
func findContours(edges [][]bool, width, height int) []*contour {
	visited := make([][]bool, height)
	for y := range visited {
		visited[y] = make([]bool, width)
	}

	var contours []*contour
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] || visited[y][x] {
				continue
			}
			c := traceContour(edges, visited, x, y, width, height)
			if len(c.pixels) >= minContourPixels {
				contours = append(contours, c)
			}
		}
	}
	return contours
}

// traceContour flood-fills from (startX, startY) with an explicit stack.
func traceContour(edges, visited [][]bool, startX, startY, width, height int) *contour {
	c := &contour{minX: width, minY: height, maxX: -1, maxY: -1}
	stack := []pixel{{startX, startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}
		visited[p.Y][p.X] = true

		c.pixels = append(c.pixels, p)
		c.minX = min(c.minX, p.X)
		c.minY = min(c.minY, p.Y)
		c.maxX = max(c.maxX, p.X)
		c.maxY = max(c.maxY, p.Y)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx != 0 || dy != 0 {
					stack = append(stack, pixel{p.X + dx, p.Y + dy})
				}
			}
		}
	}
	return c
}

// rectangularity scores how well c traces the border of its bounding box.
//
// It is the smaller of two fractions: contour pixels lying within band of
// the box border, and border positions that have a contour pixel within
// band of them. The first rejects curves, the second open shapes such as
// an L.
func (c *contour) rectangularity(band int) float64 {
	w, h := c.width()+1, c.height()+1
	if w <= 2*band || h <= 2*band {
		return 0
	}

	top := make([]bool, w)
	bottom := make([]bool, w)
	left := make([]bool, h)
	right := make([]bool, h)

	near := 0
	for _, p := range c.pixels {
		x, y := p.X-c.minX, p.Y-c.minY
		onBorder := false
		if y <= band {
			top[x] = true
			onBorder = true
		}
		if y >= h-1-band {
			bottom[x] = true
			onBorder = true
		}
		if x <= band {
			left[y] = true
			onBorder = true
		}
		if x >= w-1-band {
			right[y] = true
			onBorder = true
		}
		if onBorder {
			near++
		}
	}

	covered := count(top) + count(bottom) + count(left) + count(right)
	coverage := float64(covered) / float64(2*(w+h))
	hugging := float64(near) / float64(len(c.pixels))

	return math.Min(coverage, hugging)
}

// circleBins is the number of angular sectors checked for circle coverage.
const circleBins = 36

// circularity scores how well c traces a circle inscribed in its bounding
// box, and returns that circle. The score multiplies the fraction of pixels
// within band of the radius, the fraction of angular sectors reached, and
// the aspect ratio of the box.
func (c *contour) circularity(band float64) (cx, cy, r, score float64) {
	w, h := float64(c.width()), float64(c.height())
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}

	cx = float64(c.minX) + w/2
	cy = float64(c.minY) + h/2
	r = (w + h) / 4

	var sectors [circleBins]bool
	onRing := 0
	for _, p := range c.pixels {
		dx, dy := float64(p.X)-cx, float64(p.Y)-cy
		if math.Abs(math.Hypot(dx, dy)-r) <= band {
			onRing++
		}
		angle := math.Atan2(dy, dx) + math.Pi
		bin := int(angle / (2 * math.Pi) * circleBins)
		if bin >= circleBins {
			bin = circleBins - 1
		}
		sectors[bin] = true
	}

	ring := float64(onRing) / float64(len(c.pixels))
	coverage := float64(count(sectors[:])) / circleBins
	aspect := math.Min(w, h) / math.Max(w, h)

	return cx, cy, r, ring * coverage * aspect
}

func count(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
