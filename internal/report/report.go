// Package report renders a transformation result into a simple PDF document.
package report

import (
	"bufio"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the result text to a minimal PDF at outPath. Markdown-ish
// heading markers get larger type; everything else flows as paragraphs. This
// is intentionally simple and does not attempt full Markdown layout.
func WritePDF(title, body, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if strings.TrimSpace(title) != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 8, tr(strings.TrimSpace(title)), "", "L", false)
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 11)
	}

	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			pdf.Ln(5)
			continue
		}
		if strings.HasPrefix(s, "#") {
			i := 0
			for i < len(s) && s[i] == '#' {
				i++
			}
			text := strings.TrimSpace(s[i:])
			if text == "" {
				continue
			}
			size := 14.0
			if i >= 2 {
				size = 12.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		pdf.MultiCell(0, 5, tr(s), "", "L", false)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(outPath)
}
