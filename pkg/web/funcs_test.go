package web

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supercuration/supercon/pkg/geometry"
)

func TestTemplateFuncs(t *testing.T) {
	funcs := templateFuncs()

	assert.Equal(t, "test", funcs["ToLower"].(func(string) string)("TEST"), "ToLower function failed")
	assert.Equal(t, 15, funcs["Add"].(func(int, int) int)(10, 5), "Add function failed")
	assert.Equal(
		t,
		"a, b",
		funcs["Join"].(func([]string, string) string)([]string{"a", "b"}, ", "),
		"Join function failed",
	)

	style := funcs["RegionStyle"].(func(geometry.Rect) template.CSS)(geometry.Rect{X: 74, Y: 149, Width: 46, Height: 16})
	assert.Equal(
		t,
		template.CSS("display:block;position:absolute;left:74.00px;top:149.00px;width:46.00px;height:16.00px;"),
		style,
	)
}

func TestMarkup(t *testing.T) {
	assert.Equal(t, template.HTML("doped MgB<sub>2</sub>"), markup("doped MgB<sub>2</sub>"))
	assert.Equal(t, template.HTML("MgB2"), markup(`MgB2<script>alert("x")</script>`))
}
