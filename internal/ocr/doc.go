// Package ocr reads the text inside an image-map area using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). Callers
// pass the pixel rectangle of an area, usually its bounding region, and get
// the text plus word boxes in source image coordinates.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Languages
//
// The default language is English ("eng"). Other languages are given by
// their Tesseract codes such as "deu", "fra" or "chi_sim".
//
// If word boxes cannot be produced (e.g., Tesseract version mismatch),
// ExtractAreaText still returns the text with an empty Words slice.
package ocr
