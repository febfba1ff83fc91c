package viewer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supercuration/supercon/config"
	"github.com/supercuration/supercon/pkg/models"
	"github.com/supercuration/supercon/pkg/summary"
	"github.com/supercuration/supercon/pkg/testutils"
)

type fakeSource struct {
	annotations func(ctx context.Context, hash string) (*models.Document, error)
	pdf         func(ctx context.Context, hash string) ([]byte, error)
	process     func(ctx context.Context, filename string, pdf []byte) (*models.Document, error)
}

func (f *fakeSource) FetchAnnotations(ctx context.Context, hash string) (*models.Document, error) {
	return f.annotations(ctx, hash)
}

func (f *fakeSource) FetchPDF(ctx context.Context, hash string) ([]byte, error) {
	if f.pdf == nil {
		return nil, errors.New("no pdf")
	}
	return f.pdf(ctx, hash)
}

func (f *fakeSource) ProcessPDF(ctx context.Context, filename string, pdf []byte) (*models.Document, error) {
	return f.process(ctx, filename, pdf)
}

func sampleSource(t *testing.T) *fakeSource {
	return &fakeSource{
		annotations: func(context.Context, string) (*models.Document, error) {
			return testutils.SampleDocument(t), nil
		},
		pdf: func(context.Context, string) ([]byte, error) {
			return testutils.MinimalPDF([2]float64{595, 842}, [2]float64{595, 842}), nil
		},
		process: func(context.Context, string, []byte) (*models.Document, error) {
			return testutils.SampleDocument(t), nil
		},
	}
}

func TestOpen(t *testing.T) {
	v := New(sampleSource(t), Options{RenderScale: 1.5})

	view, err := v.Open(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, "abc", view.Hash)
	assert.Len(t, view.Canvases, 2)
	assert.InDelta(t, 1263, view.Canvases[0].Height, 1e-9)
	assert.Len(t, view.Layer.Regions, 9)
	assert.Equal(t, 3, view.Table.Len())
	assert.Len(t, view.Dropped, 1)
	assert.Equal(t, 3, view.Deferred)

	committed, err := v.View("abc")
	require.NoError(t, err)
	assert.Same(t, view, committed)
}

func TestOpenFallsBackToPageInfo(t *testing.T) {
	src := sampleSource(t)
	src.pdf = nil
	v := New(src, Options{RenderScale: 2})

	view, err := v.Open(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, view.Canvases, 2)
	assert.Equal(t, 1684.0, view.Canvases[0].Height)
	assert.Len(t, view.Layer.Regions, 9)
}

func TestOpenAnnotationError(t *testing.T) {
	src := sampleSource(t)
	src.annotations = func(context.Context, string) (*models.Document, error) {
		return nil, models.ErrEmptyResponse
	}
	v := New(src, Options{})

	_, err := v.Open(context.Background(), "abc")
	assert.True(t, errors.Is(err, models.ErrEmptyResponse))
	_, err = v.View("abc")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestOpenRequiresHash(t *testing.T) {
	_, err := New(sampleSource(t), Options{}).Open(context.Background(), " ")
	assert.True(t, errors.Is(err, models.ErrBadRequest))
}

func TestStaleRequestIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls int
	var mu sync.Mutex

	src := sampleSource(t)
	src.annotations = func(ctx context.Context, hash string) (*models.Document, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(started)
			<-release
		}
		return testutils.SampleDocument(t), nil
	}
	v := New(src, Options{})

	var slowErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, slowErr = v.Open(context.Background(), "abc")
	}()
	<-started

	fresh, err := v.Open(context.Background(), "abc")
	require.NoError(t, err)

	close(release)
	<-done
	assert.True(t, errors.Is(slowErr, models.ErrStaleRequest))

	committed, err := v.View("abc")
	require.NoError(t, err)
	assert.Same(t, fresh, committed)
}

func TestSubmit(t *testing.T) {
	pdf := testutils.MinimalPDF([2]float64{595, 842}, [2]float64{595, 842})
	var gotName string
	src := sampleSource(t)
	src.process = func(_ context.Context, filename string, _ []byte) (*models.Document, error) {
		gotName = filename
		return testutils.SampleDocument(t), nil
	}
	v := New(src, Options{RenderScale: 1.5})

	view, err := v.Submit(context.Background(), "paper.pdf", pdf)
	require.NoError(t, err)

	sum := sha256.Sum256(pdf)
	assert.Equal(t, hex.EncodeToString(sum[:]), view.Hash)
	assert.Equal(t, "paper.pdf", gotName)
	assert.Len(t, view.Canvases, 2)
	assert.Equal(t, 3, view.Table.Len())

	_, err = v.Submit(context.Background(), "empty.pdf", nil)
	assert.True(t, errors.Is(err, models.ErrBadRequest))
}

func TestSubmitUnreadablePDF(t *testing.T) {
	v := New(sampleSource(t), Options{RenderScale: 1})
	view, err := v.Submit(context.Background(), "broken.pdf", []byte("not a pdf"))
	require.NoError(t, err)
	// page sizes come from the annotation response
	assert.Equal(t, 842.0, view.Canvases[0].Height)
}

func TestPDF(t *testing.T) {
	backendPDF := testutils.MinimalPDF([2]float64{595, 842}, [2]float64{595, 842})
	var fetches int
	src := sampleSource(t)
	src.pdf = func(_ context.Context, hash string) ([]byte, error) {
		fetches++
		if hash == "gone" {
			return nil, models.NewNotFoundError("document " + hash)
		}
		return backendPDF, nil
	}
	v := New(src, Options{RenderScale: 1})

	t.Run("submitted document keeps its bytes", func(t *testing.T) {
		uploaded := testutils.MinimalPDF([2]float64{612, 792})
		view, err := v.Submit(context.Background(), "letter.pdf", uploaded)
		require.NoError(t, err)
		assert.Equal(t, uploaded, view.PDF)

		got, err := v.PDF(context.Background(), view.Hash)
		require.NoError(t, err)
		assert.Equal(t, uploaded, got)
		assert.Equal(t, 0, fetches)
	})

	t.Run("opened document keeps the fetched bytes", func(t *testing.T) {
		_, err := v.Open(context.Background(), "abc")
		require.NoError(t, err)
		fetches = 0

		got, err := v.PDF(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, backendPDF, got)
		assert.Equal(t, 0, fetches)
	})

	t.Run("unknown document is fetched", func(t *testing.T) {
		got, err := v.PDF(context.Background(), "other")
		require.NoError(t, err)
		assert.Equal(t, backendPDF, got)
		assert.Equal(t, 1, fetches)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := v.PDF(context.Background(), "gone")
		assert.True(t, errors.Is(err, models.ErrNotFound))

		_, err = v.PDF(context.Background(), " ")
		assert.True(t, errors.Is(err, models.ErrBadRequest))
	})
}

func TestTableMutations(t *testing.T) {
	v := New(sampleSource(t), Options{})
	_, err := v.Open(context.Background(), "abc")
	require.NoError(t, err)

	row, err := v.AddRow("abc")
	require.NoError(t, err)
	assert.True(t, row.Manual)

	require.NoError(t, v.RemoveRow("abc", row.ID))
	assert.True(t, errors.Is(v.RemoveRow("abc", row.ID), models.ErrNotFound))

	ids := summary.ComputeIDs("m1t1")
	updated, err := v.UpdateCell("", ids.Material, "Mg<sub>B2</sub>")
	require.NoError(t, err)
	assert.Equal(t, "MgB2", updated.Material)

	updated, err = v.UpdateCell("abc", ids.Pressure, "3 GPa")
	require.NoError(t, err)
	assert.Equal(t, "3 GPa", updated.Pressure)

	_, err = v.UpdateCell("", "matnothing", "x")
	assert.True(t, errors.Is(err, models.ErrNotFound))
	_, err = v.AddRow("unknown")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	first := r.Begin("a")
	second := r.Begin("a")
	other := r.Begin("b")

	assert.False(t, r.Current("a", first))
	assert.True(t, r.Current("a", second))
	assert.ErrorIs(t, r.Commit(&View{Hash: "a", Generation: first}), models.ErrStaleRequest)
	assert.NoError(t, r.Commit(&View{Hash: "a", Generation: second}))
	assert.NoError(t, r.Commit(&View{Hash: "b", Generation: other}))

	views := r.Views()
	require.Len(t, views, 2)
	assert.Equal(t, "a", views[0].Hash)
	assert.Equal(t, "b", views[1].Hash)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, Options{RenderScale: 1.5}, OptionsFromConfig(cfg))
	cfg.Viewer.MissingLinkPolicy = config.MissingLinkKeep
	assert.True(t, OptionsFromConfig(cfg).KeepUnresolved)
}

func TestReconcileSummary(t *testing.T) {
	doc := testutils.SampleDocument(t)
	view := Reconcile(7, doc, nil, Options{KeepUnresolved: true})
	s := view.Summary()
	assert.Equal(t, uint64(7), s.Generation)
	assert.Empty(t, s.Regions)
	assert.Equal(t, 9, s.Skipped)
	assert.Len(t, s.Rows, 4)
	assert.Equal(t, 2, s.Pages)
}
