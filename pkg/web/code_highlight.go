package web

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
)

type preWrapper struct{}

// Start is called to write a start <pre> element. code is false when the block surrounds
// line numbers.
func (p *preWrapper) Start(code bool, _ string) string {
	if code {
		return `<pre class="raw-span" tabindex="0" style="tab-size:2;white-space:pre-wrap;word-break:break-word;">`
	}
	return "<pre>"
}

func (p *preWrapper) End(_ bool) string {
	return "</pre>"
}

// CodeHighlight takes a string of code and a lexer name and returns a highlighted
// HTML string.
func CodeHighlight(code string, lexer string) (string, error) {
	l := lexers.Get(lexer)
	if l == nil {
		l = lexers.Fallback
	}
	formatter := html.New(
		html.WrapLongLines(true),
		html.TabWidth(2),
		html.WithPreWrapper(&preWrapper{}),
	)

	iterator, err := l.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, styles.Get("github"), iterator); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HighlightJSON renders v as indented, highlighted JSON, as shown for the raw span in
// the detail panel.
func HighlightJSON(v interface{}) (template.HTML, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	highlighted, err := CodeHighlight(string(raw), "json")
	if err != nil {
		return "", err
	}
	return template.HTML(highlighted), nil //nolint:gosec
}
