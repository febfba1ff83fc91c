package annotation

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supercuration/supercon/pkg/models"
	"github.com/supercuration/supercon/pkg/testutils"
)

func span(id string, t models.SpanType, links ...models.Link) models.Span {
	return models.Span{ID: id, Type: t, RawType: "<" + string(t) + ">", Text: id, Links: links}
}

func linkTo(id string, t models.SpanType) models.Link {
	return models.Link{TargetID: id, TargetText: id, TargetType: t, Type: "tcValue-material"}
}

func TestIdentityIsSymmetric(t *testing.T) {
	gofakeit.Seed(0)
	for i := 0; i < 100; i++ {
		a, b := gofakeit.UUID(), gofakeit.LetterN(uint(gofakeit.Number(1, 12)))
		assert.Equal(t, Identity(a, b), Identity(b, a))
	}
	assert.Equal(t, LinkIdentity("m1t1"), Identity("t1", "m1"))
}

func TestResolveSameParagraph(t *testing.T) {
	doc := &models.Document{Paragraphs: []models.Paragraph{{
		Text: "A B",
		Spans: []models.Span{
			span("A", models.SpanMaterial, linkTo("B", models.SpanTcValue)),
			span("B", models.SpanTcValue),
		},
	}}}

	res := Resolve(NewResolutionContext(1), doc)

	require.Len(t, res.Resolved, 1)
	assert.Empty(t, res.Deferred)
	assert.Empty(t, res.Dropped)
	assert.Equal(t, "A", res.Resolved[0].Source.ID)
	assert.Equal(t, "B", res.Resolved[0].Target.ID)
	assert.False(t, res.Resolved[0].CrossGroup)
}

func TestResolveForwardReferenceInParagraph(t *testing.T) {
	// the target is declared after the span linking to it
	doc := &models.Document{Paragraphs: []models.Paragraph{{
		Spans: []models.Span{
			span("B", models.SpanTcValue, linkTo("A", models.SpanMaterial)),
			span("A", models.SpanMaterial),
		},
	}}}

	res := Resolve(NewResolutionContext(1), doc)
	require.Len(t, res.Resolved, 1)
	assert.Empty(t, res.Deferred)
}

func TestResolveCrossParagraph(t *testing.T) {
	doc := &models.Document{Paragraphs: []models.Paragraph{
		{Spans: []models.Span{span("A", models.SpanMaterial, linkTo("C", models.SpanTcValue))}},
		{Spans: []models.Span{span("C", models.SpanTcValue)}},
	}}

	res := Resolve(NewResolutionContext(1), doc)

	require.Len(t, res.Deferred, 1)
	assert.Equal(t, "A", res.Deferred[0].Span.ID)
	require.Len(t, res.Resolved, 1)
	r := res.Resolved[0]
	assert.True(t, r.CrossGroup)
	assert.Equal(t, 0, r.Paragraph)
	assert.Equal(t, 1, r.TargetParagraph)
	assert.Equal(t, Identity("A", "C"), r.Identity)
}

func TestResolveDefersWholeSpan(t *testing.T) {
	doc := &models.Document{Paragraphs: []models.Paragraph{
		{Spans: []models.Span{
			span("A", models.SpanMaterial, linkTo("B", models.SpanTcValue), linkTo("C", models.SpanTcValue)),
			span("B", models.SpanTcValue),
		}},
		{Spans: []models.Span{span("C", models.SpanTcValue)}},
	}}

	res := Resolve(NewResolutionContext(1), doc)

	require.Len(t, res.Deferred, 1)
	require.Len(t, res.Resolved, 2, "each link is emitted exactly once")
	assert.False(t, res.Resolved[0].CrossGroup, "A-B shares a paragraph")
	assert.True(t, res.Resolved[1].CrossGroup)
}

func TestResolveDropsMissingTarget(t *testing.T) {
	doc := &models.Document{Paragraphs: []models.Paragraph{
		{Spans: []models.Span{span("A", models.SpanMaterial, linkTo("nowhere", models.SpanTcValue))}},
	}}

	res := Resolve(NewResolutionContext(1), doc)

	assert.Empty(t, res.Resolved)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, "A", res.Dropped[0].SourceID)
	assert.Equal(t, "nowhere", res.Dropped[0].TargetID)
}

func TestResolveSampleDocument(t *testing.T) {
	doc := testutils.SampleDocument(t)
	rc := NewResolutionContext(7)

	res := Resolve(rc, doc)

	assert.Equal(t, 8, rc.Global.Len())
	assert.Len(t, rc.Local, 4)
	assert.Len(t, res.Resolved, 7)
	assert.Len(t, res.Deferred, 3)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, "ghost", res.Dropped[0].TargetID)

	var cross []LinkIdentity
	for _, r := range res.Resolved {
		if r.CrossGroup {
			cross = append(cross, r.Identity)
		}
	}
	assert.Equal(t, []LinkIdentity{"m2t2", "m2t2"}, cross)
}

func TestTakePressure(t *testing.T) {
	doc := testutils.SampleDocument(t)
	rc := NewResolutionContext(1)
	Resolve(rc, doc)

	p, ok := rc.TakePressure("t1", 0, false)
	require.True(t, ok)
	assert.Equal(t, "2 GPa", p.Text)

	_, ok = rc.TakePressure("t1", 0, false)
	assert.False(t, ok, "the binding is consumed")
	_, ok = rc.TakePressure("t1", 0, true)
	assert.False(t, ok, "consumed globally as well")
}

func TestTakePressureCrossGroup(t *testing.T) {
	doc := &models.Document{Paragraphs: []models.Paragraph{
		{Spans: []models.Span{span("T", models.SpanTcValue)}},
		{Spans: []models.Span{span("P", models.SpanPressure, linkTo("T", models.SpanTcValue))}},
	}}
	rc := NewResolutionContext(1)
	Resolve(rc, doc)

	_, ok := rc.TakePressure("T", 0, false)
	assert.False(t, ok, "the pressure lives in another paragraph")

	p, ok := rc.TakePressure("T", 0, true)
	require.True(t, ok)
	assert.Equal(t, "P", p.ID)

	_, ok = rc.TakePressure("T", 1, false)
	assert.False(t, ok)
}

func TestPressureMap(t *testing.T) {
	m := make(PressureMap)
	m.Bind("t", "p")
	p, ok := m.Take("t")
	assert.True(t, ok)
	assert.Equal(t, "p", p)
	_, ok = m.Take("t")
	assert.False(t, ok)
}
