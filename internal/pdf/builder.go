package pdf

import (
	"bytes"
	"fmt"
	"strings"
)

// A4 page size in PDF points
const (
	A4Width  = 595
	A4Height = 842
)

// DefaultPlaceholderText is printed on placeholder pages when no label is given
const DefaultPlaceholderText = "This document was withheld"

// Build renders a minimal PDF with one A4 page per entry of pages, each
// showing its text in Helvetica. Line breaks in a page's text start new
// text lines. A non-empty title is written to the document info dictionary.
func Build(pages []string, title string) []byte {
	if len(pages) == 0 {
		pages = []string{""}
	}

	b := &builder{}
	b.buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	// Object layout: 1 catalog, 2 page tree, 3 font, 4 info, then a page
	// and content stream pair per page.
	const firstPage = 5
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPage+2*i)
	}

	b.object(1, "<< /Type /Catalog /Pages 2 0 R >>")
	b.object(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	b.object(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	b.object(4, fmt.Sprintf("<< /Title (%s) /Producer (disclosure-trim) >>", escapeString(title)))

	for i, text := range pages {
		pageObj := firstPage + 2*i
		contentObj := pageObj + 1
		b.object(pageObj, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			A4Width, A4Height, contentObj))
		b.stream(contentObj, pageContent(text))
	}

	b.trailer(4)
	return b.buf.Bytes()
}

// Placeholder renders a single blank A4 page carrying label
func Placeholder(label string) []byte {
	if strings.TrimSpace(label) == "" {
		label = DefaultPlaceholderText
	}
	return Build([]string{label}, "")
}

type builder struct {
	buf     bytes.Buffer
	offsets []int
}

func (b *builder) object(num int, body string) {
	b.mark(num)
	fmt.Fprintf(&b.buf, "%d 0 obj\n%s\nendobj\n", num, body)
}

func (b *builder) stream(num int, content string) {
	b.mark(num)
	fmt.Fprintf(&b.buf, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", num, len(content), content)
}

func (b *builder) mark(num int) {
	for len(b.offsets) < num {
		b.offsets = append(b.offsets, 0)
	}
	b.offsets[num-1] = b.buf.Len()
}

func (b *builder) trailer(infoObj int) {
	xref := b.buf.Len()
	size := len(b.offsets) + 1
	fmt.Fprintf(&b.buf, "xref\n0 %d\n", size)
	b.buf.WriteString("0000000000 65535 f \n")
	for _, off := range b.offsets {
		fmt.Fprintf(&b.buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b.buf, "trailer\n<< /Size %d /Root 1 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, infoObj, xref)
}

func pageContent(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var sb strings.Builder
	sb.WriteString("BT\n/F1 12 Tf\n14 TL\n72 770 Td\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("T*\n")
		}
		fmt.Fprintf(&sb, "(%s) Tj\n", escapeString(line))
	}
	sb.WriteString("ET")
	return sb.String()
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`, "\r", "", "\n", " ")

func escapeString(s string) string {
	return stringEscaper.Replace(s)
}
