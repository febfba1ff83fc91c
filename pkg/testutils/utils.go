// Package testutils holds fixtures shared by package tests.
package testutils

import (
	"encoding/json"
	"testing"

	"github.com/jinzhu/copier"
	"github.com/stretchr/testify/require"

	"github.com/supercuration/supercon/pkg/models"
)

var sampleDocument models.Document

func init() {
	if err := json.Unmarshal([]byte(SampleDocumentJSON), &sampleDocument); err != nil {
		panic(err)
	}
}

// SampleDocument returns a deep copy of the decoded sample response, so tests may mutate
// it freely.
func SampleDocument(t *testing.T) *models.Document {
	t.Helper()
	var doc models.Document
	err := copier.CopyWithOption(&doc, &sampleDocument, copier.Option{DeepCopy: true})
	require.NoError(t, err)
	return &doc
}
