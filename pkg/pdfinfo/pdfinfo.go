// Package pdfinfo reads the page geometry of a PDF, which is all the viewer needs from the
// document itself to place annotations.
package pdfinfo

import (
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/supercuration/supercon/pkg/geometry"
	"github.com/supercuration/supercon/pkg/models"
)

var ErrNoPages = errors.New("the document has no pages")

// PageSizes returns the canvas size of every page of the PDF read from rs, rendered at
// scale.
func PageSizes(rs io.ReadSeeker, scale float64) (geometry.Canvases, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("pdfcpu page dimensions: %w", err)
	}
	if len(dims) == 0 {
		return nil, ErrNoPages
	}

	canvases := make(geometry.Canvases, 0, len(dims))
	for _, d := range dims {
		canvases = append(canvases, geometry.Size{Width: d.Width * scale, Height: d.Height * scale})
	}
	return canvases, nil
}

// FromPageInfo derives canvases from the page dimensions reported by the annotation
// backend, for when the PDF itself is not available.
func FromPageInfo(pages []models.PageInfo, scale float64) geometry.Canvases {
	canvases := make(geometry.Canvases, 0, len(pages))
	for _, p := range pages {
		canvases = append(canvases, geometry.Viewport(p, scale))
	}
	return canvases
}
