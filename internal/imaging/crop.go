package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-map-mcp/internal/areamap"
)

// CropResult contains the cropped image data
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	Region      Region `json:"region"`
}

// Crop extracts a rectangular region from an image
func Crop(img image.Image, r Region, scale float64) (*CropResult, error) {
	bounds := img.Bounds()

	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(img, r.Rect())

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Region:      r,
	}, nil
}

// CropArea crops img to the bounding box of an area shape.
//
// The box is widened to whole pixels and clipped to the image. Shapes
// without a box of their own (the default area) select the whole image.
func CropArea(img image.Image, shape areamap.Shape, scale float64) (*CropResult, error) {
	r, err := AreaRegion(img, shape)
	if err != nil {
		return nil, err
	}
	return Crop(img, r, scale)
}

// AreaRegion returns the pixel region covered by shape on img.
func AreaRegion(img image.Image, shape areamap.Shape) (Region, error) {
	bounds := img.Bounds()
	if _, ok := shape.(areamap.NoShape); ok {
		return Region{}, fmt.Errorf("area %q has no usable coordinates", shape.Kind())
	}

	box, ok := shape.Bounds()
	if !ok {
		return RegionFromRect(bounds), nil
	}

	r := Region{
		X1: int(math.Floor(box.Min.X)),
		Y1: int(math.Floor(box.Min.Y)),
		X2: int(math.Ceil(box.Max.X)),
		Y2: int(math.Ceil(box.Max.Y)),
	}
	clipped := r.Rect().Intersect(bounds)
	if clipped.Empty() {
		return Region{}, fmt.Errorf("area box (%d,%d)-(%d,%d) does not overlap the image", r.X1, r.Y1, r.X2, r.Y2)
	}
	return RegionFromRect(clipped), nil
}
