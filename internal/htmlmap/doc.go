// Package htmlmap reads image maps out of HTML documents.
//
// A Document is parsed with golang.org/x/net/html and implements
// areamap.DOM, so areas found in it can be placed with an
// areamap.Calculator:
//
//	doc, err := htmlmap.ParseFile("page.html", htmlmap.WithImageSizer(cache))
//	if err != nil {
//	    return err
//	}
//	area, err := doc.FindArea(htmlmap.AreaSelector{ID: "north"})
//	if err != nil {
//	    return err
//	}
//	off := areamap.NewCalculator(doc).AreaOffset(doc.Selection(area), true)
//
// # Rendered size
//
// There is no layout engine here. The size of the element using a map is
// taken from its width and height attributes. When one or both are missing
// and an ImageSizer is configured, the intrinsic size of the image named by
// src is used, scaled to keep its aspect ratio when one attribute is given.
// Relative src values are resolved against the base directory, which
// defaults to the directory of the parsed file.
package htmlmap
