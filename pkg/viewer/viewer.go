// Package viewer fetches or submits documents, reconciles their annotations and keeps the
// resulting views for the HTTP layer.
package viewer

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/supercuration/supercon/config"
	"github.com/supercuration/supercon/internal"
	"github.com/supercuration/supercon/pkg/geometry"
	"github.com/supercuration/supercon/pkg/models"
	"github.com/supercuration/supercon/pkg/pdfinfo"
	"github.com/supercuration/supercon/pkg/summary"
)

var log = internal.GetLogger()

// Source provides documents and their annotations.
type Source interface {
	FetchAnnotations(ctx context.Context, hash string) (*models.Document, error)
	FetchPDF(ctx context.Context, hash string) ([]byte, error)
	ProcessPDF(ctx context.Context, filename string, pdf []byte) (*models.Document, error)
}

type Options struct {
	RenderScale    float64
	KeepUnresolved bool
}

// OptionsFromConfig reads the viewer options of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		RenderScale:    cfg.Viewer.RenderScale,
		KeepUnresolved: cfg.Viewer.MissingLinkPolicy == config.MissingLinkKeep,
	}
}

type Viewer struct {
	source   Source
	registry *Registry
	opts     Options
}

func New(source Source, opts Options) *Viewer {
	if opts.RenderScale <= 0 {
		opts.RenderScale = config.Default().Viewer.RenderScale
	}
	return &Viewer{source: source, registry: NewRegistry(), opts: opts}
}

// Open fetches a processed document and its annotations, concurrently, and reconciles
// them. When the PDF cannot be read, page sizes come from the annotation response.
func (v *Viewer) Open(ctx context.Context, hash string) (*View, error) {
	if strings.TrimSpace(hash) == "" {
		return nil, models.NewBadRequestError("document hash is required")
	}
	generation := v.registry.Begin(hash)

	var doc *models.Document
	var pdf []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = v.source.FetchAnnotations(gctx, hash)
		if err != nil {
			return fmt.Errorf("fetching annotations of %s: %w", hash, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pdf, err = v.source.FetchPDF(gctx, hash)
		if err != nil {
			log.Warnf("fetching document %s failed, page sizes will come from the annotations: %v", hash, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return v.commit(hash, generation, doc, v.canvases(hash, pdf, doc), pdf)
}

// Submit sends a PDF to the backend for processing and reconciles the answer. The
// document is registered under the SHA-256 of its content.
func (v *Viewer) Submit(ctx context.Context, filename string, pdf []byte) (*View, error) {
	if len(pdf) == 0 {
		return nil, models.NewBadRequestError("the submitted document is empty")
	}
	sum := sha256.Sum256(pdf)
	hash := hex.EncodeToString(sum[:])
	generation := v.registry.Begin(hash)
	log.Infof("processing %s (%s) as %s", filename, humanize.Bytes(uint64(len(pdf))), hash)

	var doc *models.Document
	var canvases geometry.Canvases
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = v.source.ProcessPDF(gctx, filename, pdf)
		if err != nil {
			return fmt.Errorf("processing %s: %w", filename, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		canvases, err = pdfinfo.PageSizes(bytes.NewReader(pdf), v.opts.RenderScale)
		if err != nil {
			log.Warnf("reading page sizes of %s failed: %v", filename, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(canvases) == 0 {
		canvases = pdfinfo.FromPageInfo(doc.Pages, v.opts.RenderScale)
	}

	return v.commit(hash, generation, doc, canvases, pdf)
}

func (v *Viewer) canvases(hash string, pdf []byte, doc *models.Document) geometry.Canvases {
	if len(pdf) > 0 {
		canvases, err := pdfinfo.PageSizes(bytes.NewReader(pdf), v.opts.RenderScale)
		if err == nil {
			return canvases
		}
		log.Warnf("reading page sizes of %s failed: %v", hash, err)
	}
	return pdfinfo.FromPageInfo(doc.Pages, v.opts.RenderScale)
}

func (v *Viewer) commit(hash string, generation uint64, doc *models.Document, canvases geometry.Canvases, pdf []byte) (*View, error) {
	if doc == nil {
		return nil, models.ErrEmptyResponse
	}
	// skip the work when a newer request has already started
	if !v.registry.Current(hash, generation) {
		return nil, models.ErrStaleRequest
	}

	view := Reconcile(generation, doc, canvases, v.opts)
	view.Hash = hash
	view.PDF = pdf
	if err := v.registry.Commit(view); err != nil {
		log.Infof("discarding result of request %d for %s: %v", generation, hash, err)
		return nil, err
	}
	log.Debugf("document %s: %d region(s), %d row(s), %d dropped link(s)",
		hash, len(view.Layer.Regions), view.Table.Len(), len(view.Dropped))
	return view, nil
}

// View returns the committed view of a document.
func (v *Viewer) View(hash string) (*View, error) {
	return v.registry.Get(hash)
}

// PDF returns the bytes of a document. Documents loaded with their PDF are served from
// the registry, anything else is fetched from the backend.
func (v *Viewer) PDF(ctx context.Context, hash string) ([]byte, error) {
	if strings.TrimSpace(hash) == "" {
		return nil, models.NewBadRequestError("document hash is required")
	}
	if view, err := v.registry.Get(hash); err == nil && len(view.PDF) > 0 {
		return view.PDF, nil
	}
	pdf, err := v.source.FetchPDF(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("fetching document %s: %w", hash, err)
	}
	return pdf, nil
}

// AddRow appends an empty manual row to the table of a document.
func (v *Viewer) AddRow(hash string) (summary.Row, error) {
	view, err := v.registry.Get(hash)
	if err != nil {
		return summary.Row{}, err
	}
	return view.Table.AddManual(), nil
}

// RemoveRow deletes a row from the table of a document.
func (v *Viewer) RemoveRow(hash, rowID string) error {
	view, err := v.registry.Get(hash)
	if err != nil {
		return err
	}
	return view.Table.Remove(rowID)
}

// UpdateCell applies a curator edit. Without a hash every committed document is searched
// for the cell, most recent first, since cell ids carry no document reference.
func (v *Viewer) UpdateCell(hash, cellID, value string) (summary.Row, error) {
	if hash != "" {
		view, err := v.registry.Get(hash)
		if err != nil {
			return summary.Row{}, err
		}
		return view.Table.UpdateCell(cellID, value)
	}

	views := v.registry.Views()
	for i := len(views) - 1; i >= 0; i-- {
		row, err := views[i].Table.UpdateCell(cellID, value)
		if err == nil {
			return row, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return summary.Row{}, err
		}
	}
	return summary.Row{}, models.NewNotFoundError("cell " + cellID)
}
