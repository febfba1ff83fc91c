package models

import "encoding/json"

// Document is the annotation response returned by the backend for one PDF.
type Document struct {
	Pages      []PageInfo  `json:"pages"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// PageInfo holds the logical dimensions of a page, in PDF units.
type PageInfo struct {
	Height float64 `json:"page_height"`
	Width  float64 `json:"page_width"`
}

// Page returns the info of the 1-based page number.
func (d *Document) Page(number int) (PageInfo, bool) {
	if number < 1 || number > len(d.Pages) {
		return PageInfo{}, false
	}
	return d.Pages[number-1], true
}

// Paragraph owns an ordered list of spans whose offsets index into Text. The spans of a
// paragraph form the local scope for link resolution.
type Paragraph struct {
	Text  string `json:"text"`
	Spans []Span `json:"spans,omitempty"`
}

// BoundingBox locates one visual occurrence of a span on a page, in PDF units.
type BoundingBox struct {
	Page   int     `json:"page"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Link is a typed relation from the owning span to another span.
type Link struct {
	TargetID   string   `json:"targetId"`
	TargetText string   `json:"targetText"`
	TargetType SpanType `json:"-"`
	// RawTargetType is the label as received, markers included.
	RawTargetType string `json:"targetType"`
	Type          string `json:"type"`
}

func (l *Link) UnmarshalJSON(data []byte) error {
	type alias Link
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	a.TargetType = ParseSpanType(a.RawTargetType)
	*l = Link(a)
	return nil
}

// Span is a detected text region of a paragraph.
type Span struct {
	ID            string   `json:"id"`
	Type          SpanType `json:"-"`
	RawType       string   `json:"type"`
	Text          string   `json:"text"`
	FormattedText string   `json:"formattedText,omitempty"`
	// OffsetStart and OffsetEnd are UTF-16 code unit offsets into the paragraph text.
	OffsetStart   int               `json:"offsetStart"`
	OffsetEnd     int               `json:"offsetEnd"`
	BoundingBoxes []BoundingBox     `json:"boundingBoxes,omitempty"`
	Links         []Link            `json:"links,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

func (s *Span) UnmarshalJSON(data []byte) error {
	type alias Span
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	a.Type = ParseSpanType(a.RawType)
	*s = Span(a)
	return nil
}

// DisplayText is the normalized form when the backend provides one.
func (s *Span) DisplayText() string {
	if s.FormattedText != "" {
		return s.FormattedText
	}
	return s.Text
}

// VisualType is the presentation class of the span, see VisualType.
func (s *Span) VisualType() string {
	return VisualType(s.Type, s.Links)
}
