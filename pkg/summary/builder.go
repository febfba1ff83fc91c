package summary

import (
	"sort"
	"strings"

	"github.com/supercuration/supercon/internal"
	"github.com/supercuration/supercon/pkg/annotation"
	"github.com/supercuration/supercon/pkg/highlight"
	"github.com/supercuration/supercon/pkg/models"
)

var log = internal.GetLogger()

// CrossGroupPreview replaces the preview of a link whose spans are in different
// paragraphs.
const CrossGroupPreview = "This link is across two sentences, it cannot be previewed for the time being."

// Options tunes how the table is built.
type Options struct {
	// KeepUnresolved adds a row for a material link whose target was never found, filled
	// with the target text carried by the link itself. Such links are dropped otherwise.
	KeepUnresolved bool
}

// Build turns the resolved links of a document into summary rows. Only links with a
// material on one side produce rows; the row is oriented with the material first. Two
// links sharing an identity produce one row whose types accumulate.
func Build(rc *annotation.ResolutionContext, doc *models.Document, result *annotation.Result, opts Options) *Table {
	table := NewTable()

	for i := range result.Resolved {
		link := &result.Resolved[i]
		material, other, otherParagraph, ok := orient(link)
		if !ok {
			continue
		}

		fields := materialFields(material)
		fields.TcValue = other.Text
		fields.SourceSpan = material.ID
		fields.TargetSpan = other.ID
		fields.CrossGroup = link.CrossGroup
		fields.Preview = preview(doc, link)

		rowID, _ := table.Upsert(link.Identity.String(), fields, link.Link.Type)

		if other.Type != models.SpanTcValue {
			continue
		}
		if row, _ := table.Get(rowID); row.Pressure != "" {
			continue
		}
		if pressure, ok := rc.TakePressure(other.ID, otherParagraph, link.CrossGroup); ok {
			table.SetPressure(rowID, pressure.Text)
		}
	}

	if opts.KeepUnresolved {
		for _, dropped := range result.Dropped {
			if dropped.Source == nil || dropped.Source.Type != models.SpanMaterial {
				continue
			}
			fields := materialFields(dropped.Source)
			fields.TcValue = dropped.TargetText
			fields.SourceSpan = dropped.SourceID
			fields.TargetSpan = dropped.TargetID
			fields.Unresolved = true
			table.Upsert(annotation.Identity(dropped.SourceID, dropped.TargetID).String(), fields, dropped.Type)
		}
	}

	log.Debugf("summary table built with %d row(s) out of %d resolved link(s)", table.Len(), len(result.Resolved))
	return table
}

// orient returns the material side of the link first, with the paragraph of the other
// side.
func orient(link *annotation.ResolvedLink) (*models.Span, *models.Span, int, bool) {
	switch {
	case link.Source.Type == models.SpanMaterial:
		return link.Source, link.Target, link.TargetParagraph, true
	case link.Target.Type == models.SpanMaterial:
		return link.Target, link.Source, link.Paragraph, true
	default:
		return nil, nil, 0, false
	}
}

func materialFields(material *models.Span) Row {
	return Row{
		Material: material.Text,
		Class:    joinAttributes(material.Attributes, "clazz"),
		Shape:    joinAttributes(material.Attributes, "shape"),
	}
}

// joinAttributes joins the values of the attributes whose key ends with suffix, in key
// order.
func joinAttributes(attributes map[string]string, suffix string) string {
	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		if strings.HasSuffix(k, suffix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, attributes[k])
	}
	return strings.Join(values, ", ")
}

func preview(doc *models.Document, link *annotation.ResolvedLink) string {
	if link.CrossGroup {
		return CrossGroupPreview
	}
	text, ok := annotation.ParagraphText(doc, link.Paragraph)
	if !ok {
		return ""
	}
	return highlight.Spans(text, link.Source, link.Target)
}
