package htmlmap

import (
	"math"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ironsheep/image-map-mcp/internal/areamap"
)

// RenderedSize implements areamap.DOM.
func (d *Document) RenderedSize(el areamap.Element) (areamap.Size, bool) {
	e, ok := el.(*Element)
	if !ok || e == nil {
		return areamap.Size{}, false
	}

	w, hasW := parseLength(e.AttrOr("width", ""))
	h, hasH := parseLength(e.AttrOr("height", ""))
	if hasW && hasH {
		return areamap.Size{Width: w, Height: h}, true
	}

	iw, ih, ok := d.intrinsicSize(e)
	if !ok {
		return areamap.Size{}, false
	}

	switch {
	case hasW:
		return areamap.Size{Width: w, Height: scale(ih, w, iw)}, true
	case hasH:
		return areamap.Size{Width: scale(iw, h, ih), Height: h}, true
	default:
		return areamap.Size{Width: iw, Height: ih}, true
	}
}

func scale(v, to, from float64) float64 {
	if from == 0 {
		return 0
	}
	return v * to / from
}

func (d *Document) intrinsicSize(e *Element) (float64, float64, bool) {
	if d.sizer == nil {
		return 0, 0, false
	}
	path, ok := d.resolveSrc(e)
	if !ok {
		return 0, 0, false
	}
	w, h, err := d.sizer.ImageSize(path)
	if err != nil {
		return 0, 0, false
	}
	return float64(w), float64(h), true
}

// resolveSrc turns the src attribute of e into a local file path. Remote
// and data URLs are not resolvable.
func (d *Document) resolveSrc(e *Element) (string, bool) {
	src := strings.TrimSpace(e.AttrOr("src", ""))
	if src == "" {
		return "", false
	}

	u, err := url.Parse(src)
	if err != nil {
		return "", false
	}
	if u.Scheme != "" && u.Scheme != "file" {
		return "", false
	}

	path := filepath.FromSlash(u.Path)
	if path == "" {
		return "", false
	}
	if !filepath.IsAbs(path) && d.baseDir != "" {
		path = filepath.Join(d.baseDir, path)
	}
	return path, true
}

// parseLength reads a width or height attribute: a non-negative number
// with an optional px suffix. Percentages are not lengths here.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
