// Package pdfbook streams the text of a PDF as chapter-like sections.
// PDFs rarely carry usable structural metadata, so pages are grouped
// into fixed-size sections, titled by a detected heading line when one
// is present.
package pdfbook

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"bookdepth/models"
)

const (
	pagesPerSection = 10
	minSectionChars = 500
	headingScan     = 10 // lines inspected for a section heading
)

var headingPattern = regexp.MustCompile(`(?i)^(chapter|part|section|appendix|\d+\.)\s`)

// Source is a single-use chapter source over one PDF file.
type Source struct {
	file   *os.File
	reader *pdf.Reader
	page   int
	index  int
}

func Open(pdfPath string) (*Source, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	return &Source{file: f, reader: r, page: 1}, nil
}

// Next assembles the next section from up to pagesPerSection pages.
// Pages that fail to decode are skipped; sections below the size floor
// are dropped. io.EOF after the final page.
func (s *Source) Next() (*models.Chapter, error) {
	total := s.reader.NumPage()
	for s.page <= total {
		start := s.page
		var sb strings.Builder
		title := ""

		for s.page <= total && s.page < start+pagesPerSection {
			p := s.reader.Page(s.page)
			s.page++
			if p.V.IsNull() {
				continue
			}
			content, err := p.GetPlainText(nil)
			if err != nil {
				continue
			}
			if title == "" {
				title = headingLine(content)
			}
			sb.WriteString(content)
			sb.WriteString("\n")
		}

		text := sb.String()
		if len(strings.TrimSpace(text)) < minSectionChars {
			continue
		}
		if title == "" {
			title = fmt.Sprintf("Pages %d-%d", start, s.page-1)
		}

		chapter := &models.Chapter{Index: s.index, Title: title, Text: text}
		s.index++
		return chapter, nil
	}
	return nil, io.EOF
}

func (s *Source) Close() error {
	return s.file.Close()
}

func headingLine(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > headingScan {
		lines = lines[:headingScan]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if headingPattern.MatchString(line) {
			return line
		}
	}
	return ""
}
