package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/supercuration/supercon/config"
	"github.com/supercuration/supercon/pkg/app"
	"github.com/supercuration/supercon/pkg/models"
	"github.com/supercuration/supercon/pkg/pdfinfo"
	"github.com/supercuration/supercon/pkg/summary"
	"github.com/supercuration/supercon/pkg/viewer"
)

// reconcileFile exports the summary table of an annotation response saved on disk.
// Page sizes come from the response itself since no PDF is at hand.
func reconcileFile(cfg *config.Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return withOutput(func(w io.Writer) error {
		return reconcile(w, f, cfg, exportFormat)
	})
}

func reconcile(w io.Writer, r io.Reader, cfg *config.Config, format string) error {
	f, err := summary.ParseFormat(format)
	if err != nil {
		return err
	}

	var doc models.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decoding annotations: %w", err)
	}

	opts := viewer.OptionsFromConfig(cfg)
	view := viewer.Reconcile(0, &doc, pdfinfo.FromPageInfo(doc.Pages, opts.RenderScale), opts)
	if n := len(view.Dropped); n > 0 {
		log.Warnf("%d link(s) point to spans missing from the response", n)
	}
	return export(w, view, f, cfg)
}

// fetchDocument opens a processed document through the backend and exports its table.
func fetchDocument(ctx context.Context, cfg *config.Config, hash string) error {
	f, err := summary.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	appState := app.NewAppState(cfg)
	view, err := appState.Viewer.Open(ctx, hash)
	if err != nil {
		return err
	}
	return withOutput(func(w io.Writer) error {
		return export(w, view, f, cfg)
	})
}

func export(w io.Writer, view *viewer.View, f summary.Format, cfg *config.Config) error {
	return summary.Export(w, f, view.Table.Rows(), summary.ExportOptions{
		BaseURI:   cfg.Export.RDFBaseURI,
		Namespace: cfg.Export.RDFNamespace,
	})
}

func withOutput(fn func(w io.Writer) error) error {
	if outputPath == "" {
		return fn(os.Stdout)
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := fn(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
