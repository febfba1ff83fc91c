package annotation

import (
	"github.com/supercuration/supercon/pkg/models"
)

// ResolvedLink is a link whose target span was found.
type ResolvedLink struct {
	Identity LinkIdentity
	Source   *models.Span
	Target   *models.Span
	Link     models.Link
	// Paragraph owns Source, TargetParagraph owns Target.
	Paragraph       int
	TargetParagraph int
	// CrossGroup is set when the two spans belong to different paragraphs, in which
	// case their offsets cannot be highlighted in a single text.
	CrossGroup bool
}

// DeferredSpan is a span with at least one link whose target is outside its paragraph.
type DeferredSpan struct {
	Span      *models.Span
	Paragraph int
}

// DroppedLink is a link whose target could not be found anywhere in the response.
type DroppedLink struct {
	Source     *models.Span `json:"-"`
	SourceID   string       `json:"source_id"`
	TargetID   string       `json:"target_id"`
	TargetText string       `json:"target_text"`
	Type       string       `json:"type"`
	Paragraph  int          `json:"paragraph"`
}

// Result is the outcome of both resolution stages.
type Result struct {
	Resolved []ResolvedLink
	// Deferred lists the spans that went through the second stage.
	Deferred []DeferredSpan
	Dropped  []DroppedLink
}

// Resolve walks every paragraph of doc: spans are indexed, then links are resolved
// against the paragraph (stage one). Spans with a link leaving their paragraph are
// deferred as a whole and resolved against the global index once every paragraph has
// been indexed (stage two).
func Resolve(rc *ResolutionContext, doc *models.Document) *Result {
	result := &Result{}
	for p := range doc.Paragraphs {
		paragraph := &doc.Paragraphs[p]
		local := rc.indexParagraph(p, paragraph)
		resolved, deferred := resolveLocal(local, p, paragraph.Spans)
		result.Resolved = append(result.Resolved, resolved...)
		result.Deferred = append(result.Deferred, deferred...)
	}

	resolved, dropped := resolveDeferred(rc.Global, result.Deferred)
	result.Resolved = append(result.Resolved, resolved...)
	result.Dropped = dropped

	if len(dropped) > 0 {
		log.Warnf("%d link(s) dropped, their target span is not part of the response", len(dropped))
	}
	return result
}

// resolveLocal resolves the links of spans whose targets all live in the same paragraph.
// A span with any unresolved target is deferred without emitting any of its links, so
// that its links are handled together in stage two.
func resolveLocal(local *Index, paragraph int, spans []models.Span) ([]ResolvedLink, []DeferredSpan) {
	var resolved []ResolvedLink
	var deferred []DeferredSpan
	for i := range spans {
		span := &spans[i]
		if len(span.Links) == 0 {
			continue
		}
		if !allLocal(local, span.Links) {
			deferred = append(deferred, DeferredSpan{Span: span, Paragraph: paragraph})
			continue
		}
		for _, link := range span.Links {
			target, _ := local.Lookup(link.TargetID)
			resolved = append(resolved, newResolvedLink(span, paragraph, target, link))
		}
	}
	return resolved, deferred
}

func allLocal(local *Index, links []models.Link) bool {
	for _, link := range links {
		if _, ok := local.Lookup(link.TargetID); !ok {
			return false
		}
	}
	return true
}

// resolveDeferred resolves deferred spans against the index of the whole response.
func resolveDeferred(global *Index, deferred []DeferredSpan) ([]ResolvedLink, []DroppedLink) {
	var resolved []ResolvedLink
	var dropped []DroppedLink
	for _, d := range deferred {
		for _, link := range d.Span.Links {
			target, ok := global.Lookup(link.TargetID)
			if !ok {
				log.Warnf("the link from %s to %s cannot be found", d.Span.ID, link.TargetID)
				dropped = append(dropped, DroppedLink{
					Source:     d.Span,
					SourceID:   d.Span.ID,
					TargetID:   link.TargetID,
					TargetText: link.TargetText,
					Type:       link.Type,
					Paragraph:  d.Paragraph,
				})
				continue
			}
			resolved = append(resolved, newResolvedLink(d.Span, d.Paragraph, target, link))
		}
	}
	return resolved, dropped
}

func newResolvedLink(source *models.Span, paragraph int, target Entry, link models.Link) ResolvedLink {
	return ResolvedLink{
		Identity:        Identity(source.ID, link.TargetID),
		Source:          source,
		Target:          target.Span,
		Link:            link,
		Paragraph:       paragraph,
		TargetParagraph: target.Paragraph,
		CrossGroup:      target.Paragraph != paragraph,
	}
}
