package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpanType(t *testing.T) {
	tests := map[string]SpanType{
		"<material>":  SpanMaterial,
		"tcValue":     SpanTcValue,
		"<pressure>":  SpanPressure,
		"<me_method>": SpanMethod,
		" <tc> ":      SpanTc,
		"<unknown>":   SpanType("unknown"),
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseSpanType(raw), raw)
	}
	assert.True(t, SpanMaterial.Known())
	assert.False(t, SpanType("unknown").Known())
}

func TestVisualType(t *testing.T) {
	tests := []struct {
		name  string
		typ   SpanType
		links []Link
		want  string
	}{
		{"no links", SpanMaterial, nil, "material"},
		{"material to tc value", SpanMaterial, []Link{{TargetType: SpanTcValue}}, VisualMaterialTc},
		{"material to pressure", SpanMaterial, []Link{{TargetType: SpanPressure}}, "material"},
		{"tc value to material", SpanTcValue, []Link{{TargetType: SpanMaterial}}, VisualTemperatureTc},
		{"tc value to pressure", SpanTcValue, []Link{{TargetType: SpanPressure}}, VisualTemperatureTc},
		{"tc value to method", SpanTcValue, []Link{{TargetType: SpanMethod}}, VisualTemperatureTc},
		{"tc value to class", SpanTcValue, []Link{{TargetType: SpanClass}}, "tcValue"},
		{"pressure to tc value", SpanPressure, []Link{{TargetType: SpanTcValue}}, "pressure"},
		{"second link upgrades", SpanMaterial, []Link{{TargetType: SpanClass}, {TargetType: SpanTcValue}}, VisualMaterialTc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisualType(tt.typ, tt.links))
		})
	}
}

func TestSpanUnmarshal(t *testing.T) {
	raw := `{"id":"s1","type":"<material>","text":"MgB2","offsetStart":3,"offsetEnd":7,
		"links":[{"targetId":"s2","targetText":"39 K","targetType":"<tcValue>","type":"tcValue-material"}]}`

	var s Span
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	assert.Equal(t, SpanMaterial, s.Type)
	assert.Equal(t, "<material>", s.RawType)
	require.Len(t, s.Links, 1)
	assert.Equal(t, SpanTcValue, s.Links[0].TargetType)
	assert.Equal(t, "<tcValue>", s.Links[0].RawTargetType)
	assert.Equal(t, VisualMaterialTc, s.VisualType())
	// the stored type is untouched by the display upgrade
	assert.Equal(t, SpanMaterial, s.Type)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"type":"<material>"`)
}

func TestDisplayText(t *testing.T) {
	s := Span{Text: "MgB2"}
	assert.Equal(t, "MgB2", s.DisplayText())
	s.FormattedText = "MgB<sub>2</sub>"
	assert.Equal(t, "MgB<sub>2</sub>", s.DisplayText())
}

func TestDocumentPage(t *testing.T) {
	d := Document{Pages: []PageInfo{{Height: 10, Width: 5}}}
	p, ok := d.Page(1)
	assert.True(t, ok)
	assert.Equal(t, 10.0, p.Height)
	_, ok = d.Page(2)
	assert.False(t, ok)
	_, ok = d.Page(0)
	assert.False(t, ok)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("row row42")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "row row42 not found", err.Error())
	assert.ErrorIs(t, NewBadRequestError("nope"), ErrBadRequest)
}
