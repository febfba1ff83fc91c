package web

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/supercuration/supercon/pkg/annotation"
	"github.com/supercuration/supercon/pkg/app"
	"github.com/supercuration/supercon/pkg/geometry"
	"github.com/supercuration/supercon/pkg/overlay"
	"github.com/supercuration/supercon/pkg/summary"
	"github.com/supercuration/supercon/pkg/viewer"
)

const feedbackURL = "/annotation/feedback"

// Column is a header of the summary table.
type Column struct {
	Name     string
	Editable bool
}

var summaryColumns = []Column{
	{Name: ""},
	{Name: ""},
	{Name: "Material", Editable: true},
	{Name: "Class", Editable: true},
	{Name: "Shape", Editable: true},
	{Name: "Tc", Editable: true},
	{Name: "Applied pressure", Editable: true},
	{Name: "Type"},
}

// PageCanvas is one rendered page with its overlay regions.
type PageCanvas struct {
	Number  int
	Size    geometry.Size
	Regions []overlay.Region
}

// TableRow pairs a summary row with its cell identifiers.
type TableRow struct {
	summary.Row
	Cells summary.CellIDs
	// FirstRegion is the region the row scrolls to.
	FirstRegion string
}

type DocumentPage struct {
	Hash        string
	// PDFURL serves the document bytes the browser renders into the page canvases.
	PDFURL      string
	Pages       []PageCanvas
	Columns     []Column
	Rows        []TableRow
	Dropped     []annotation.DroppedLink
	Skipped     int
	FeedbackURL string
	Formats     []summary.Format
}

// PDFURL is the API path of the bytes of a document.
func PDFURL(hash string) string {
	return "/api/v1/documents/" + url.PathEscape(hash) + "/pdf"
}

// NewDocumentPage lays out a view for the document template.
func NewDocumentPage(view *viewer.View) *DocumentPage {
	page := &DocumentPage{
		Hash:        view.Hash,
		PDFURL:      PDFURL(view.Hash),
		Columns:     summaryColumns,
		Dropped:     view.Dropped,
		Skipped:     view.Layer.Skipped,
		FeedbackURL: feedbackURL,
		Formats:     []summary.Format{summary.FormatCSV, summary.FormatRDF, summary.FormatTSV},
	}
	for i, size := range view.Canvases {
		page.Pages = append(page.Pages, PageCanvas{
			Number:  i + 1,
			Size:    size,
			Regions: view.Layer.ForPage(i + 1),
		})
	}
	for _, row := range view.Table.Rows() {
		tr := TableRow{Row: row, Cells: row.Cells()}
		if row.SourceSpan != "" {
			if _, ok := view.Layer.Region(overlay.RegionID(row.SourceSpan, 0)); ok {
				tr.FirstRegion = overlay.RegionID(row.SourceSpan, 0)
			}
		}
		page.Rows = append(page.Rows, tr)
	}
	return page
}

// DocumentHandler renders the viewer page of a document, opening it first when it has
// not been loaded yet.
func DocumentHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash := chi.URLParam(r, "hash")
		view, err := appState.Viewer.View(hash)
		if err != nil {
			view, err = appState.Viewer.Open(r.Context(), hash)
			if err != nil {
				handleError(w, err, "Failed to open document")
				return
			}
		}

		page := NewPage(
			"Document",
			hash,
			r.URL.Path,
			[]string{"templates/document.html"},
			NewDocumentPage(view),
		)
		page.Render(w, r)
	}
}

// RegionDetail is the detail panel of a selected region.
type RegionDetail struct {
	*overlay.Detail
	Raw interface{}
}

// RegionDetailHandler renders the detail panel of a region of an open document.
func RegionDetailHandler(appState *app.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash := chi.URLParam(r, "hash")
		regionID := chi.URLParam(r, "regionId")

		view, err := appState.Viewer.View(hash)
		if err != nil {
			handleError(w, err, "Failed to get document")
			return
		}
		detail, err := view.Layer.Select(regionID)
		if err != nil {
			handleError(w, err, "Failed to get region")
			return
		}
		raw, err := HighlightJSON(detail.Span)
		if err != nil {
			log.Warnf("highlighting span %s: %v", detail.SpanID, err)
		}

		page := NewPage(
			detail.SpanID,
			detail.VisualType,
			r.URL.Path,
			[]string{"templates/detail.html"},
			RegionDetail{Detail: detail, Raw: raw},
		)
		page.Render(w, r)
	}
}
