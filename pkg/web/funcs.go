package web

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/supercuration/supercon/pkg/geometry"
)

var markupPolicy = bluemonday.UGCPolicy()

func add(a, b int) int {
	return a + b
}

// safeHTML marks markup produced by the highlighter, which escapes the text it wraps.
func safeHTML(s string) template.HTML {
	return template.HTML(s) //nolint:gosec
}

// markup keeps the inline formatting of a backend supplied text, such as <sub> in
// chemical formulas, and drops anything else.
func markup(s string) template.HTML {
	return template.HTML(markupPolicy.Sanitize(s)) //nolint:gosec
}

// regionStyle positions an overlay region on its page canvas.
func regionStyle(r geometry.Rect) template.CSS {
	return template.CSS(fmt.Sprintf(
		"display:block;position:absolute;left:%.2fpx;top:%.2fpx;width:%.2fpx;height:%.2fpx;",
		r.X, r.Y, r.Width, r.Height,
	))
}

func canvasStyle(s geometry.Size) template.CSS {
	return template.CSS(fmt.Sprintf("position:relative;width:%.2fpx;height:%.2fpx;", s.Width, s.Height))
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"ToLower":     strings.ToLower,
		"Join":        strings.Join,
		"Add":         add,
		"SafeHTML":    safeHTML,
		"Markup":      markup,
		"RegionStyle": regionStyle,
		"CanvasStyle": canvasStyle,
	}
}
