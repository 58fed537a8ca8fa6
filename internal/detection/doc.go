// Package detection proposes image-map areas for the shapes in an image.
//
// SuggestAreas looks for closed outlines in diagrams, screenshots and
// other clean, high-contrast images, and expresses each one as a circle or
// rect area: the coords attribute, the corner and centre offsets the area
// would report, and a confidence score. MapHTML turns a result into a
// ready-to-edit <map> element.
//
// # Algorithm Overview
//
//  1. Edge Detection: Convert to grayscale and detect edges using gradient thresholds
//  2. Contours: Group connected edge pixels with an iterative flood fill
//  3. Classification: Score every contour as a rectangle and as a circle
//  4. Filtering: Drop contours below the size or confidence thresholds
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Edge pixels sit on the boundary between two colours, so suggested
// outlines may be one pixel larger than the drawn shape.
//
// # Limitations
//
// Noisy images, photographs, or hand-drawn content may produce poor results.
// Polygons are never suggested; trace them by hand.
package detection
