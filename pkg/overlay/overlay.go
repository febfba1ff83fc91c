// Package overlay places the bounding boxes of annotated spans on rendered page canvases
// and builds the detail view of a selected span.
package overlay

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/supercuration/supercon/internal"
	"github.com/supercuration/supercon/pkg/annotation"
	"github.com/supercuration/supercon/pkg/geometry"
	"github.com/supercuration/supercon/pkg/models"
)

var log = internal.GetLogger()

// Region is the clickable area drawn for one bounding box of a span.
type Region struct {
	ID       string        `json:"id"`
	SpanID   string        `json:"span_id"`
	BoxIndex int           `json:"box_index"`
	Page     int           `json:"page"`
	Rect     geometry.Rect `json:"rect"`
	Class    string        `json:"class"`
}

// RegionID identifies the box of a span. Boxes are numbered from 0 in the order the
// backend lists them.
func RegionID(spanID string, boxIndex int) string {
	return spanID + "-" + strconv.Itoa(boxIndex)
}

// Layer is the set of regions of a document.
type Layer struct {
	Regions []Region `json:"regions"`
	// Skipped counts the boxes that could not be placed because their page is unknown or
	// has no usable dimensions.
	Skipped int `json:"skipped"`

	index *annotation.Index
	byID  map[string]int
}

// Build maps every bounding box of every span of doc onto its page canvas. Spans are
// looked up later through index when a region is selected.
func Build(doc *models.Document, index *annotation.Index, canvases geometry.Canvases) *Layer {
	layer := &Layer{index: index, byID: make(map[string]int)}

	for p := range doc.Paragraphs {
		spans := doc.Paragraphs[p].Spans
		for s := range spans {
			span := &spans[s]
			class := span.VisualType()
			for i, box := range span.BoundingBoxes {
				rect, err := place(doc, canvases, box)
				if err != nil {
					log.Debugf("skipping box %d of span %s: %v", i, span.ID, err)
					layer.Skipped++
					continue
				}
				region := Region{
					ID:       RegionID(span.ID, i),
					SpanID:   span.ID,
					BoxIndex: i,
					Page:     box.Page,
					Rect:     rect,
					Class:    class,
				}
				layer.byID[region.ID] = len(layer.Regions)
				layer.Regions = append(layer.Regions, region)
			}
		}
	}

	if layer.Skipped > 0 {
		log.Warnf("%d bounding box(es) skipped, their page has no usable dimensions", layer.Skipped)
	}
	return layer
}

func place(doc *models.Document, canvases geometry.Canvases, box models.BoundingBox) (geometry.Rect, error) {
	page, ok := doc.Page(box.Page)
	if !ok {
		return geometry.Rect{}, models.NewNotFoundError(fmt.Sprintf("page %d", box.Page))
	}
	canvas, ok := canvases.Canvas(box.Page)
	if !ok {
		return geometry.Rect{}, models.NewNotFoundError(fmt.Sprintf("canvas of page %d", box.Page))
	}
	return geometry.Map(box, page, canvas)
}

// ForPage returns the regions drawn on the 1-based page.
func (l *Layer) ForPage(page int) []Region {
	var regions []Region
	for _, r := range l.Regions {
		if r.Page == page {
			regions = append(regions, r)
		}
	}
	return regions
}

// Pages lists the pages holding at least one region, in increasing order.
func (l *Layer) Pages() []int {
	seen := make(map[int]struct{})
	var pages []int
	for _, r := range l.Regions {
		if _, ok := seen[r.Page]; !ok {
			seen[r.Page] = struct{}{}
			pages = append(pages, r.Page)
		}
	}
	sort.Ints(pages)
	return pages
}

// Region returns the region with the given id.
func (l *Layer) Region(regionID string) (Region, bool) {
	i, ok := l.byID[regionID]
	if !ok {
		return Region{}, false
	}
	return l.Regions[i], true
}

// Select returns the detail view of the span behind a region.
func (l *Layer) Select(regionID string) (*Detail, error) {
	region, ok := l.Region(regionID)
	if !ok {
		return nil, models.NewNotFoundError("region " + regionID)
	}
	if l.index == nil {
		return nil, errors.New("the layer has no span index")
	}
	entry, ok := l.index.Lookup(region.SpanID)
	if !ok {
		return nil, models.NewNotFoundError("span " + region.SpanID)
	}
	detail := NewDetail(entry.Span)
	detail.Page = region.Page
	detail.Paragraph = entry.Paragraph
	return detail, nil
}
