package annotation

import "github.com/supercuration/supercon/pkg/models"

// Entry is an indexed span together with the paragraph that owns it.
type Entry struct {
	Span      *models.Span
	Paragraph int
}

// Index maps span ids to their records.
type Index struct {
	entries map[string]Entry
}

func NewIndex() *Index {
	return &Index{entries: make(map[string]Entry)}
}

// Add registers span. A later span with the same id replaces the earlier one.
func (i *Index) Add(span *models.Span, paragraph int) {
	if _, dup := i.entries[span.ID]; dup {
		log.Debugf("span id %s indexed twice, keeping the last occurrence", span.ID)
	}
	i.entries[span.ID] = Entry{Span: span, Paragraph: paragraph}
}

func (i *Index) Lookup(id string) (Entry, bool) {
	e, ok := i.entries[id]
	return e, ok
}

func (i *Index) Len() int {
	return len(i.entries)
}
