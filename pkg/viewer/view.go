package viewer

import (
	"github.com/supercuration/supercon/pkg/annotation"
	"github.com/supercuration/supercon/pkg/geometry"
	"github.com/supercuration/supercon/pkg/models"
	"github.com/supercuration/supercon/pkg/overlay"
	"github.com/supercuration/supercon/pkg/summary"
)

// View is everything derived from one annotation response.
type View struct {
	Hash       string
	Generation uint64
	Document   *models.Document
	Canvases   geometry.Canvases
	Layer      *overlay.Layer
	Table      *summary.Table
	Dropped    []annotation.DroppedLink
	// Deferred counts the spans resolved against the whole document.
	Deferred int
	// PDF holds the document bytes when they were fetched or submitted with the request.
	PDF []byte
}

// Reconcile resolves the links of doc, places its boxes on canvases and builds the
// summary table. It only reads doc and keeps all its state in a fresh resolution
// context, so concurrent calls never interfere.
func Reconcile(generation uint64, doc *models.Document, canvases geometry.Canvases, opts Options) *View {
	rc := annotation.NewResolutionContext(generation)
	result := annotation.Resolve(rc, doc)
	layer := overlay.Build(doc, rc.Global, canvases)
	table := summary.Build(rc, doc, result, summary.Options{KeepUnresolved: opts.KeepUnresolved})

	return &View{
		Generation: generation,
		Document:   doc,
		Canvases:   canvases,
		Layer:      layer,
		Table:      table,
		Dropped:    result.Dropped,
		Deferred:   len(result.Deferred),
	}
}

// Summary is the JSON form of a view returned by the API.
type Summary struct {
	Hash       string                   `json:"hash"`
	Generation uint64                   `json:"generation"`
	Pages      int                      `json:"pages"`
	Canvases   geometry.Canvases        `json:"canvases"`
	Regions    []overlay.Region         `json:"regions"`
	Skipped    int                      `json:"skipped_boxes"`
	Rows       []summary.Row            `json:"rows"`
	Dropped    []annotation.DroppedLink `json:"dropped_links"`
}

func (v *View) Summary() Summary {
	return Summary{
		Hash:       v.Hash,
		Generation: v.Generation,
		Pages:      len(v.Document.Pages),
		Canvases:   v.Canvases,
		Regions:    v.Layer.Regions,
		Skipped:    v.Layer.Skipped,
		Rows:       v.Table.Rows(),
		Dropped:    v.Dropped,
	}
}
