package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supercuration/supercon/config"
	"github.com/supercuration/supercon/internal"
	"github.com/supercuration/supercon/pkg/summary"
	"github.com/supercuration/supercon/pkg/testutils"
)

func TestReconcile(t *testing.T) {
	log = internal.GetLogger()
	cfg := config.Default()

	t.Run("csv", func(t *testing.T) {
		var out bytes.Buffer
		err := reconcile(&out, strings.NewReader(testutils.SampleDocumentJSON), cfg, "csv")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, summary.CSVHeader, lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "MgB2,"), lines[1])
	})

	t.Run("rdf uses the configured base uri", func(t *testing.T) {
		var out bytes.Buffer
		err := reconcile(&out, strings.NewReader(testutils.SampleDocumentJSON), cfg, "rdf")
		require.NoError(t, err)
		assert.Contains(t, out.String(), cfg.Export.RDFBaseURI+"m1t1")
	})

	t.Run("keep policy exports unresolved rows", func(t *testing.T) {
		keep := config.Default()
		keep.Viewer.MissingLinkPolicy = config.MissingLinkKeep
		var out bytes.Buffer
		err := reconcile(&out, strings.NewReader(testutils.SampleDocumentJSON), keep, "tsv")
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 4)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := reconcile(&bytes.Buffer{}, strings.NewReader(testutils.SampleDocumentJSON), cfg, "pdf")
		assert.Error(t, err)
	})

	t.Run("malformed response", func(t *testing.T) {
		err := reconcile(&bytes.Buffer{}, strings.NewReader("{"), cfg, "csv")
		assert.ErrorContains(t, err, "decoding annotations")
	})
}
