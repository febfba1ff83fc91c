package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supercuration/supercon/pkg/annotation"
	"github.com/supercuration/supercon/pkg/models"
	"github.com/supercuration/supercon/pkg/testutils"
)

func buildSample(t *testing.T, opts Options) []Row {
	t.Helper()
	doc := testutils.SampleDocument(t)
	rc := annotation.NewResolutionContext(1)
	result := annotation.Resolve(rc, doc)
	return Build(rc, doc, result, opts).Rows()
}

func TestBuildSampleDocument(t *testing.T) {
	rows := buildSample(t, Options{})

	require.Len(t, rows, 3)
	assert.Equal(t, "m1t1", rows[0].Key)
	assert.Equal(t, "m4t1", rows[1].Key)
	assert.Equal(t, "m2t2", rows[2].Key)

	m1 := rows[0]
	assert.Equal(t, "rowm1t1", m1.ID)
	assert.Equal(t, "MgB2", m1.Material)
	assert.Equal(t, "Alloys", m1.Class)
	assert.Equal(t, "bulk", m1.Shape)
	assert.Equal(t, "39 K", m1.TcValue)
	assert.Equal(t, "2 GPa", m1.Pressure)
	assert.Equal(t, "tcValue-material", m1.Type())
	assert.Equal(t, "m1", m1.SourceSpan)
	assert.Equal(t, "t1", m1.TargetSpan)
	assert.False(t, m1.CrossGroup)

	m4 := rows[1]
	assert.Equal(t, "doped MgB2", m4.Material)
	assert.Equal(t, "Alloys, Borides", m4.Class)
	assert.Empty(t, m4.Pressure, "the pressure goes to one row only")

	m2 := rows[2]
	assert.Equal(t, "LaH10", m2.Material)
	assert.Equal(t, "250 K", m2.TcValue)
	assert.True(t, m2.CrossGroup)
	assert.Equal(t, CrossGroupPreview, m2.Preview)
}

func TestBuildPreview(t *testing.T) {
	rows := buildSample(t, Options{})

	assert.Equal(t,
		`<span id="annot_supercon-m1" rel="popover" data-color="interval"><span class="label material-tc">MgB2</span></span>`+
			` and doped MgB2 show Tc of `+
			`<span id="annot_supercon-t1" rel="popover" data-color="interval"><span class="label temperature-tc">39 K</span></span>`+
			` at 2 GPa.`,
		rows[0].Preview)
}

func TestBuildKeepUnresolved(t *testing.T) {
	rows := buildSample(t, Options{KeepUnresolved: true})

	require.Len(t, rows, 4)
	ghost := rows[3]
	assert.Equal(t, "ghostm3", ghost.Key)
	assert.True(t, ghost.Unresolved)
	assert.Equal(t, "CeH9", ghost.Material)
	assert.Equal(t, "10 K", ghost.TcValue)
	assert.Empty(t, ghost.Preview)
}

func TestBuildOrientsMaterialFirst(t *testing.T) {
	// only the temperature links to the material
	doc := &models.Document{Paragraphs: []models.Paragraph{{
		Text: "Tc of 92K for YBCO",
		Spans: []models.Span{
			{ID: "t", Type: models.SpanTcValue, Text: "92K", OffsetStart: 6, OffsetEnd: 9,
				Links: []models.Link{{TargetID: "m", TargetText: "YBCO", TargetType: models.SpanMaterial, Type: "tcValue-material"}}},
			{ID: "m", Type: models.SpanMaterial, Text: "YBCO", OffsetStart: 14, OffsetEnd: 18},
		},
	}}}
	rc := annotation.NewResolutionContext(1)
	rows := Build(rc, doc, annotation.Resolve(rc, doc), Options{}).Rows()

	require.Len(t, rows, 1)
	assert.Equal(t, "YBCO", rows[0].Material)
	assert.Equal(t, "92K", rows[0].TcValue)
	assert.Equal(t, "m", rows[0].SourceSpan)
}

func TestBuildIgnoresLinksWithoutMaterial(t *testing.T) {
	doc := &models.Document{Paragraphs: []models.Paragraph{{
		Spans: []models.Span{
			{ID: "p", Type: models.SpanPressure, Text: "2 GPa",
				Links: []models.Link{{TargetID: "t", TargetType: models.SpanTcValue, Type: "tcValue-pressure"}}},
			{ID: "t", Type: models.SpanTcValue, Text: "39 K"},
		},
	}}}
	rc := annotation.NewResolutionContext(1)
	table := Build(rc, doc, annotation.Resolve(rc, doc), Options{})
	assert.Equal(t, 0, table.Len())
}

func TestJoinAttributes(t *testing.T) {
	attrs := map[string]string{
		"material1_clazz": "Borides",
		"material0_clazz": "Alloys",
		"material0_shape": "bulk",
		"material0_name":  "x",
	}
	assert.Equal(t, "Alloys, Borides", joinAttributes(attrs, "clazz"))
	assert.Equal(t, "bulk", joinAttributes(attrs, "shape"))
	assert.Equal(t, "", joinAttributes(nil, "shape"))
}
