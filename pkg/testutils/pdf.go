package testutils

import (
	"fmt"
	"strings"
)

// MinimalPDF builds a PDF with one empty page per media box, given as width and height.
func MinimalPDF(mediaBoxes ...[2]float64) []byte {
	n := len(mediaBoxes)
	// catalog, pages, then a page and its content stream for every box
	objects := 2 + 2*n

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, objects+1)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}
	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), n)

	stream := "q Q"
	for i, box := range mediaBoxes {
		page, content := 3+2*i, 4+2*i
		offsets[page] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Contents %d 0 R /Resources << >> >>\nendobj\n",
			page, box[0], box[1], content)
		offsets[content] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", content, len(stream), stream)
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", objects+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= objects; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objects+1, xref)
	return []byte(b.String())
}
