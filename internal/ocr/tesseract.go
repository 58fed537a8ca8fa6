package ocr

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is used when no language is given.
const DefaultLanguage = "eng"

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Word is one recognised word with its location and OCR confidence.
type Word struct {
	// Text is the recognized text content.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this word in the source image.
	Bounds Bounds `json:"bounds"`
}

// AreaText contains the text found inside one region of an image.
type AreaText struct {
	// Text is all recognized text, trimmed, with line breaks kept.
	Text string `json:"text"`

	// Words contains individual words with their bounding boxes. May be
	// empty when Tesseract cannot produce word boxes; Text is still set.
	Words []Word `json:"words"`

	// Region is the searched rectangle in source image coordinates.
	Region Bounds `json:"region"`

	// Language is the Tesseract language the text was read with.
	Language string `json:"language"`
}

// ExtractAreaText runs OCR on the part of img inside r.
//
// r is clipped to the image. Word boxes are translated back to source
// image coordinates: a word found at (10, 20) in a region starting at
// (100, 50) is reported at (110, 70).
func ExtractAreaText(img image.Image, r image.Rectangle, language string) (*AreaText, error) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("region does not overlap the image")
	}
	if language == "" {
		language = DefaultLanguage
	}

	cropped := imaging.Crop(img, r)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cropped, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode region: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	result := &AreaText{
		Text:     strings.TrimSpace(text),
		Words:    []Word{},
		Region:   Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y},
		Language: language,
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return result, nil
	}

	for _, box := range boxes {
		if strings.TrimSpace(box.Word) == "" {
			continue
		}
		result.Words = append(result.Words, Word{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds:     offsetBounds(box.Box, r.Min),
		})
	}

	return result, nil
}

// offsetBounds moves a crop-relative box into source image coordinates.
func offsetBounds(box image.Rectangle, origin image.Point) Bounds {
	box = box.Add(origin)
	return Bounds{X1: box.Min.X, Y1: box.Min.Y, X2: box.Max.X, Y2: box.Max.Y}
}

// Info describes the OCR backend.
type Info struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Backend   string `json:"backend"`
}

// GetInfo reports the linked Tesseract version.
func GetInfo() Info {
	client := gosseract.NewClient()
	defer client.Close()

	version := client.Version()
	return Info{
		Available: version != "",
		Version:   version,
		Backend:   "gosseract",
	}
}
