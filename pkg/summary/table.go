package summary

import (
	"html"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/supercuration/supercon/pkg/models"
)

// Row is one line of the summary table. Rows extracted from the document are keyed by
// the identity of the link they come from; manual rows get a random key.
type Row struct {
	ID         string   `json:"id"`
	Key        string   `json:"key"`
	Material   string   `json:"material"`
	Class      string   `json:"class"`
	Shape      string   `json:"shape"`
	TcValue    string   `json:"tc_value"`
	Pressure   string   `json:"pressure"`
	Types      []string `json:"types"`
	SourceSpan string   `json:"source_span,omitempty"`
	TargetSpan string   `json:"target_span,omitempty"`
	CrossGroup bool     `json:"cross_group"`
	// Preview is the HTML rendering of the paragraph with both spans highlighted.
	Preview    string `json:"preview,omitempty"`
	Manual     bool   `json:"manual"`
	Unresolved bool   `json:"unresolved"`
}

// Type is the relation label shown in the table.
func (r *Row) Type() string {
	return strings.Join(r.Types, ", ")
}

// Cells returns the identifiers of the row's cells.
func (r *Row) Cells() CellIDs {
	return ComputeIDs(r.Key)
}

// CellIDs are the identifiers derived from a row key. They are deterministic, so a row
// and its cells can be found again from the key alone.
type CellIDs struct {
	Row      string `json:"row"`
	Element  string `json:"element"`
	Material string `json:"material"`
	Class    string `json:"class"`
	Shape    string `json:"shape"`
	TcValue  string `json:"tc_value"`
	Pressure string `json:"pressure"`
}

const (
	prefixRow      = "row"
	prefixElement  = "e"
	prefixMaterial = "mat"
	prefixClass    = "cla"
	prefixShape    = "shape"
	prefixTc       = "tc"
	prefixPressure = "pressure"
)

func ComputeIDs(key string) CellIDs {
	return CellIDs{
		Row:      prefixRow + key,
		Element:  prefixElement + key,
		Material: prefixMaterial + key,
		Class:    prefixClass + key,
		Shape:    prefixShape + key,
		TcValue:  prefixTc + key,
		Pressure: prefixPressure + key,
	}
}

// editable cells, longest prefix first
var editablePrefixes = []string{prefixPressure, prefixShape, prefixMaterial, prefixClass, prefixTc}

var sanitizer = bluemonday.StrictPolicy()

// Table is an ordered, concurrency safe collection of rows.
type Table struct {
	mu    sync.RWMutex
	rows  []*Row
	byKey map[string]*Row
}

func NewTable() *Table {
	return &Table{byKey: make(map[string]*Row)}
}

// Upsert appends a row for key the first time it is seen and returns the row id. When the
// key is already present the row is left in place and relation is added to its types.
func (t *Table) Upsert(key string, fields Row, relation string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if row, ok := t.byKey[key]; ok {
		row.addType(relation)
		return row.ID, false
	}

	row := fields
	row.Key = key
	row.ID = prefixRow + key
	row.Types = nil
	row.addType(relation)
	t.rows = append(t.rows, &row)
	t.byKey[key] = &row
	return row.ID, true
}

func (r *Row) addType(relation string) {
	if relation == "" {
		return
	}
	for _, existing := range r.Types {
		if existing == relation {
			return
		}
	}
	r.Types = append(r.Types, relation)
}

// SetPressure fills the pressure of a row that has none yet.
func (t *Table) SetPressure(rowID, pressure string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.byKey[strings.TrimPrefix(rowID, prefixRow)]
	if !ok || row.Pressure != "" {
		return false
	}
	row.Pressure = pressure
	return true
}

// AddManual appends an empty row, as the curator does when a record was missed.
func (t *Table) AddManual() Row {
	key := "_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	t.Upsert(key, Row{Manual: true}, "")

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.byKey[key].clone()
}

// Remove deletes a row. Its key can be inserted again afterwards.
func (t *Table) Remove(rowID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := strings.TrimPrefix(rowID, prefixRow)
	row, ok := t.byKey[key]
	if !ok || row.ID != rowID {
		return models.NewNotFoundError("row " + rowID)
	}
	delete(t.byKey, key)
	for i, r := range t.rows {
		if r == row {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateCell stores a curator edit. The cell is addressed by its identifier and the
// value is reduced to plain text.
func (t *Table) UpdateCell(cellID, value string) (Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, prefix := range editablePrefixes {
		if !strings.HasPrefix(cellID, prefix) {
			continue
		}
		row, ok := t.byKey[strings.TrimPrefix(cellID, prefix)]
		if !ok {
			continue
		}
		clean := html.UnescapeString(sanitizer.Sanitize(value))
		switch prefix {
		case prefixMaterial:
			row.Material = clean
		case prefixClass:
			row.Class = clean
		case prefixShape:
			row.Shape = clean
		case prefixTc:
			row.TcValue = clean
		case prefixPressure:
			row.Pressure = clean
		}
		return row.clone(), nil
	}
	return Row{}, models.NewNotFoundError("cell " + cellID)
}

// Get returns a copy of the row with the given id.
func (t *Table) Get(rowID string) (Row, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.byKey[strings.TrimPrefix(rowID, prefixRow)]
	if !ok || row.ID != rowID {
		return Row{}, false
	}
	return row.clone(), true
}

// Rows returns a snapshot of the rows in insertion order.
func (t *Table) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, r.clone())
	}
	return rows
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

func (r *Row) clone() Row {
	c := *r
	c.Types = append([]string(nil), r.Types...)
	return c
}
