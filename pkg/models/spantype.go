package models

import "strings"

// SpanType is the semantic category of a span.
type SpanType string

const (
	SpanMaterial SpanType = "material"
	SpanClass    SpanType = "class"
	SpanTc       SpanType = "tc"
	SpanTcValue  SpanType = "tcValue"
	SpanPressure SpanType = "pressure"
	SpanMethod   SpanType = "me_method"
)

// Composite classes used when a span is linked to a partner category.
const (
	VisualMaterialTc    = "material-tc"
	VisualTemperatureTc = "temperature-tc"
)

var knownSpanTypes = map[SpanType]struct{}{
	SpanMaterial: {},
	SpanClass:    {},
	SpanTc:       {},
	SpanTcValue:  {},
	SpanPressure: {},
	SpanMethod:   {},
}

var markerStripper = strings.NewReplacer("<", "", ">", "")

// ParseSpanType strips the enclosing markers of a raw label such as "<material>".
// Unknown labels are kept as their stripped text so they still classify for display.
func ParseSpanType(raw string) SpanType {
	return SpanType(markerStripper.Replace(strings.TrimSpace(raw)))
}

// Known reports whether t is one of the categories produced by the backend.
func (t SpanType) Known() bool {
	_, ok := knownSpanTypes[t]
	return ok
}

func (t SpanType) String() string {
	return string(t)
}

// VisualType upgrades the display class of a span depending on what it links to:
// a material linked to a Tc value becomes material-tc, a Tc value linked to a material,
// a pressure or a measurement method becomes temperature-tc. The stored type is not
// touched.
func VisualType(t SpanType, links []Link) string {
	for _, link := range links {
		switch {
		case t == SpanMaterial && link.TargetType == SpanTcValue:
			return VisualMaterialTc
		case t == SpanTcValue && (link.TargetType == SpanMaterial ||
			link.TargetType == SpanPressure ||
			link.TargetType == SpanMethod):
			return VisualTemperatureTc
		}
	}
	return string(t)
}
