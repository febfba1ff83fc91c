// Package highlight marks annotated regions inside a paragraph text.
//
// Offsets are UTF-16 code units, the unit the annotation backend counts in.
// Callers must pass non-overlapping annotations: overlapping ranges produce repeated or
// misplaced text, never a panic.
package highlight

import (
	"html"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/supercuration/supercon/pkg/models"
)

// Annotation is a region of text to mark.
type Annotation struct {
	ID    string
	Start int
	End   int
	// Class is the visual type the region is tagged with.
	Class string
}

// FromSpan builds the annotation of a span, classified by its visual type.
func FromSpan(s *models.Span) Annotation {
	return Annotation{ID: s.ID, Start: s.OffsetStart, End: s.OffsetEnd, Class: s.VisualType()}
}

// Segment is a piece of the output: either untouched text or a marked region.
type Segment struct {
	Text       string
	Annotation *Annotation
}

// Segments walks annotations sorted by start offset, the original order breaking ties,
// and cuts text into untouched and marked pieces.
func Segments(text string, annotations []Annotation) []Segment {
	units := utf16.Encode([]rune(text))
	sorted := make([]Annotation, len(annotations))
	copy(sorted, annotations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var segments []Segment
	pos := 0
	for i := range sorted {
		a := &sorted[i]
		start := clamp(a.Start, 0, len(units))
		end := clamp(a.End, start, len(units))
		if start > pos {
			segments = append(segments, Segment{Text: decode(units[pos:start])})
		}
		segments = append(segments, Segment{Text: decode(units[start:end]), Annotation: a})
		pos = end
	}
	if pos < len(units) {
		segments = append(segments, Segment{Text: decode(units[pos:])})
	}
	return segments
}

// Highlight renders text as HTML with every annotation wrapped in a labelled span.
func Highlight(text string, annotations []Annotation) string {
	var sb strings.Builder
	for _, seg := range Segments(text, annotations) {
		if seg.Annotation == nil {
			sb.WriteString(html.EscapeString(seg.Text))
			continue
		}
		sb.WriteString(`<span id="annot_supercon-`)
		sb.WriteString(html.EscapeString(seg.Annotation.ID))
		sb.WriteString(`" rel="popover" data-color="interval"><span class="label `)
		sb.WriteString(html.EscapeString(seg.Annotation.Class))
		sb.WriteString(`">`)
		sb.WriteString(html.EscapeString(seg.Text))
		sb.WriteString(`</span></span>`)
	}
	return sb.String()
}

// Spans highlights the given spans of a paragraph.
func Spans(text string, spans ...*models.Span) string {
	annotations := make([]Annotation, 0, len(spans))
	for _, s := range spans {
		annotations = append(annotations, FromSpan(s))
	}
	return Highlight(text, annotations)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func decode(units []uint16) string {
	return string(utf16.Decode(units))
}
