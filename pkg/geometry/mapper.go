// Package geometry converts bounding boxes between PDF page units and the pixel space of
// a rendered page canvas.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/supercuration/supercon/pkg/models"
)

// BorderOffset widens every mapped rectangle so a drawn border does not shift it.
const BorderOffset = 1.0

var ErrInvalidCanvas = errors.New("canvas dimensions must be positive")

// Rect is a pixel rectangle relative to the top-left corner of a page canvas.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size is the pixel size of a rendered page canvas.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Canvases holds the canvas size of each page, page 1 first.
type Canvases []Size

// Canvas returns the size of the 1-based page.
func (c Canvases) Canvas(page int) (Size, bool) {
	if page < 1 || page > len(c) {
		return Size{}, false
	}
	return c[page-1], true
}

// Viewport is the canvas size a renderer produces for page at the given zoom.
func Viewport(page models.PageInfo, scale float64) Size {
	return Size{Width: page.Width * scale, Height: page.Height * scale}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func scales(page models.PageInfo, canvas Size) (float64, float64, error) {
	if !positive(page.Height) || !positive(page.Width) {
		return 0, 0, fmt.Errorf("%w: %vx%v", models.ErrDegeneratePage, page.Width, page.Height)
	}
	if !positive(canvas.Height) || !positive(canvas.Width) {
		return 0, 0, fmt.Errorf("%w: %vx%v", ErrInvalidCanvas, canvas.Width, canvas.Height)
	}
	// The horizontal factor is derived from the heights and the vertical one from the
	// widths. Both are equal for a uniformly scaled viewport.
	return canvas.Height / page.Height, canvas.Width / page.Width, nil
}

// Map places box, given in page units, on a canvas of the given pixel size.
func Map(box models.BoundingBox, page models.PageInfo, canvas Size) (Rect, error) {
	scaleX, scaleY, err := scales(page, canvas)
	if err != nil {
		return Rect{}, err
	}
	return Rect{
		X:      box.X*scaleX - BorderOffset,
		Y:      box.Y*scaleY - BorderOffset,
		Width:  box.Width*scaleX + BorderOffset,
		Height: box.Height*scaleY + BorderOffset,
	}, nil
}

// Unmap is the inverse of Map. The page number of the result is left to the caller.
func Unmap(r Rect, page models.PageInfo, canvas Size) (models.BoundingBox, error) {
	scaleX, scaleY, err := scales(page, canvas)
	if err != nil {
		return models.BoundingBox{}, err
	}
	return models.BoundingBox{
		X:      (r.X + BorderOffset) / scaleX,
		Y:      (r.Y + BorderOffset) / scaleY,
		Width:  (r.Width - BorderOffset) / scaleX,
		Height: (r.Height - BorderOffset) / scaleY,
	}, nil
}
