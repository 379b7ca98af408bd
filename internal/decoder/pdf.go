package decoder

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// yTolerance groups positioned text fragments that sit on the same visual line.
const yTolerance = 2.0

// DecodePDF extracts every page as a list of text lines, top to bottom.
// Fragments are grouped into lines by their Y coordinate and ordered by X
// within a line; no grid structure is reconstructed.
func DecodePDF(path string) (*Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	doc := &Document{
		FileName:  filepath.Base(path),
		Extension: ".pdf",
	}

	for pageNo := 1; pageNo <= reader.NumPage(); pageNo++ {
		page := reader.Page(pageNo)
		if page.V.IsNull() {
			continue
		}
		doc.Pages = append(doc.Pages, pageLines(page.Content().Text))
	}

	return doc, nil
}

type pdfLine struct {
	y         float64
	fragments []pdf.Text
}

// pageLines rebuilds reading order from positioned fragments. PDF Y grows
// upward, so lines sort by descending Y.
func pageLines(texts []pdf.Text) []string {
	var lines []*pdfLine

	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		var line *pdfLine
		for _, l := range lines {
			if t.Y >= l.y-yTolerance && t.Y <= l.y+yTolerance {
				line = l
				break
			}
		}
		if line == nil {
			line = &pdfLine{y: t.Y}
			lines = append(lines, line)
		}
		line.fragments = append(line.fragments, t)
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	result := make([]string, 0, len(lines))
	for _, l := range lines {
		sort.Slice(l.fragments, func(i, j int) bool { return l.fragments[i].X < l.fragments[j].X })

		var b strings.Builder
		prevEnd := 0.0
		for i, frag := range l.fragments {
			// A visible horizontal gap becomes a single separating space.
			if i > 0 && frag.X-prevEnd > 1.0 {
				b.WriteByte(' ')
			}
			b.WriteString(frag.S)
			prevEnd = frag.X + frag.W
		}
		result = append(result, strings.TrimSpace(b.String()))
	}

	return result
}
