package overlay

import (
	"fmt"
	"sort"
	"strings"

	"github.com/supercuration/supercon/pkg/models"
)

const (
	attributeFormula         = "formula"
	attributeResolvedFormula = "resolvedFormula"
	attributeRawTaggedValue  = "rawTaggedValue"
)

// Detail is what the side panel shows for a selected span.
type Detail struct {
	SpanID     string `json:"span_id"`
	Type       string `json:"type"`
	VisualType string `json:"visual_type"`
	// Name is the formatted text when there is one. It may contain markup.
	Name            string         `json:"name"`
	Page            int            `json:"page"`
	Paragraph       int            `json:"paragraph"`
	Linked          []LinkedEntity `json:"linked,omitempty"`
	Attributes      []Attribute    `json:"attributes,omitempty"`
	ResolvedFormula string         `json:"resolved_formula,omitempty"`

	Span *models.Span `json:"-"`
}

// LinkedEntity describes one link of the span.
type LinkedEntity struct {
	Text     string `json:"text"`
	Type     string `json:"type"`
	Relation string `json:"relation"`
}

func (e LinkedEntity) String() string {
	return fmt.Sprintf("%s (%s) [%s]", e.Text, e.Type, e.Relation)
}

// Attribute is a span attribute whose key has the form prefix_property.
type Attribute struct {
	Prefix   string `json:"prefix"`
	Property string `json:"property"`
	Value    string `json:"value"`
}

// NewDetail describes span. Attributes are listed in key order; the raw tagged value is
// left out and the resolved formula is only reported when it differs from the formula.
func NewDetail(span *models.Span) *Detail {
	d := &Detail{
		SpanID:     span.ID,
		Type:       span.Type.String(),
		VisualType: span.VisualType(),
		Name:       span.DisplayText(),
		Span:       span,
	}

	for _, link := range span.Links {
		d.Linked = append(d.Linked, LinkedEntity{
			Text:     link.TargetText,
			Type:     link.TargetType.String(),
			Relation: link.Type,
		})
	}

	keys := make([]string, 0, len(span.Attributes))
	for k := range span.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var formula string
	var resolved []string
	for _, k := range keys {
		value := span.Attributes[k]
		prefix, property, found := strings.Cut(k, "_")
		if !found {
			prefix, property = "", k
		}
		switch property {
		case attributeRawTaggedValue:
			continue
		case attributeResolvedFormula:
			resolved = append(resolved, value)
			continue
		case attributeFormula:
			formula = value
		}
		d.Attributes = append(d.Attributes, Attribute{Prefix: prefix, Property: property, Value: value})
	}
	if len(resolved) > 0 && resolved[0] != formula {
		d.ResolvedFormula = strings.Join(resolved, ", ")
	}
	return d
}

// LinkedSummary joins the linked entities the way the panel prints them.
func (d *Detail) LinkedSummary() string {
	parts := make([]string, 0, len(d.Linked))
	for _, e := range d.Linked {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}
