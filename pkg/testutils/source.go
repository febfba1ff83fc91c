package testutils

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/supercuration/supercon/pkg/models"
)

// StaticSource serves the sample document for every hash. Hashes listed in Missing are
// reported as not found.
type StaticSource struct {
	Missing map[string]bool

	mu        sync.Mutex
	processed []string
}

func (s *StaticSource) FetchAnnotations(_ context.Context, hash string) (*models.Document, error) {
	if s.Missing[hash] {
		return nil, models.NewNotFoundError("document " + hash)
	}
	return decodeSample()
}

func (s *StaticSource) FetchPDF(_ context.Context, hash string) ([]byte, error) {
	if s.Missing[hash] {
		return nil, models.NewNotFoundError("document " + hash)
	}
	return MinimalPDF([2]float64{595, 842}, [2]float64{595, 842}), nil
}

func (s *StaticSource) ProcessPDF(_ context.Context, filename string, _ []byte) (*models.Document, error) {
	s.mu.Lock()
	s.processed = append(s.processed, filename)
	s.mu.Unlock()
	return decodeSample()
}

// Processed lists the file names submitted so far.
func (s *StaticSource) Processed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.processed...)
}

func decodeSample() (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal([]byte(SampleDocumentJSON), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
