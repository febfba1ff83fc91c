package annotation

import (
	"github.com/supercuration/supercon/internal"
	"github.com/supercuration/supercon/pkg/models"
)

var log = internal.GetLogger()

// ResolutionContext carries all the state of reconciling one annotation response. A new
// context is created for every request so nothing leaks between requests.
type ResolutionContext struct {
	// Generation identifies the request that owns this context.
	Generation uint64
	Global     *Index
	Local      []*Index

	localPressures  []PressureMap
	globalPressures PressureMap
}

func NewResolutionContext(generation uint64) *ResolutionContext {
	return &ResolutionContext{
		Generation:      generation,
		Global:          NewIndex(),
		globalPressures: make(PressureMap),
	}
}

// indexParagraph fills the local and global indices with the spans of one paragraph and
// collects its pressure bindings. It runs before any link of the paragraph is resolved.
func (rc *ResolutionContext) indexParagraph(paragraph int, p *models.Paragraph) *Index {
	local := NewIndex()
	pressures := make(PressureMap)
	for i := range p.Spans {
		span := &p.Spans[i]
		local.Add(span, paragraph)
		rc.Global.Add(span, paragraph)
	}
	for i := range p.Spans {
		span := &p.Spans[i]
		if span.Type != models.SpanPressure {
			continue
		}
		for _, link := range span.Links {
			pressures.Bind(link.TargetID, span.ID)
			rc.globalPressures.Bind(link.TargetID, span.ID)
		}
	}
	rc.Local = append(rc.Local, local)
	rc.localPressures = append(rc.localPressures, pressures)
	return local
}

// TakePressure returns the pressure span bound to the temperature span temperatureID.
// Links resolved inside their paragraph only see that paragraph's bindings; cross
// paragraph links see every binding. The binding is consumed either way.
func (rc *ResolutionContext) TakePressure(temperatureID string, paragraph int, crossGroup bool) (*models.Span, bool) {
	var pressureID string
	var ok bool
	if crossGroup {
		pressureID, ok = rc.globalPressures.Take(temperatureID)
		if ok {
			for _, local := range rc.localPressures {
				if local[temperatureID] == pressureID {
					delete(local, temperatureID)
				}
			}
		}
	} else {
		if paragraph < 0 || paragraph >= len(rc.localPressures) {
			return nil, false
		}
		pressureID, ok = rc.localPressures[paragraph].Take(temperatureID)
		if ok && rc.globalPressures[temperatureID] == pressureID {
			delete(rc.globalPressures, temperatureID)
		}
	}
	if !ok {
		return nil, false
	}
	entry, found := rc.Global.Lookup(pressureID)
	if !found {
		return nil, false
	}
	return entry.Span, true
}

// ParagraphText returns the text of the paragraph at the given position of doc.
func ParagraphText(doc *models.Document, paragraph int) (string, bool) {
	if paragraph < 0 || paragraph >= len(doc.Paragraphs) {
		return "", false
	}
	return doc.Paragraphs[paragraph].Text, true
}
