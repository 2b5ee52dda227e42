// Package epub streams the spine documents of an epub file as plain-text
// chapters. An epub is a zip with an OPF package manifest; spine order
// is reading order. Each spine document is distilled with go-readability
// and flattened to block text with goquery.
package epub

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"bookdepth/models"
)

// minChapterChars filters out covers, title pages, and navigation stubs.
const minChapterChars = 500

const titleScanLines = 20

var titlePattern = regexp.MustCompile(`(?i)^(chapter|part|\d+\.)`)

type containerXML struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type packageXML struct {
	Manifest struct {
		Items []struct {
			ID   string `xml:"id,attr"`
			Href string `xml:"href,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

// Source is a single-use chapter source over one epub file.
type Source struct {
	zr    *zip.ReadCloser
	files map[string]*zip.File
	spine []string // archive paths in reading order
	pos   int
	index int
}

// Open parses the epub container and package documents and prepares the
// spine for streaming. Chapters are decoded one at a time by Next.
func Open(epubPath string) (*Source, error) {
	zr, err := zip.OpenReader(epubPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}

	src := &Source{
		zr:    zr,
		files: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		src.files[f.Name] = f
	}

	if err := src.readSpine(); err != nil {
		_ = zr.Close()
		return nil, err
	}
	return src, nil
}

func (s *Source) readSpine() error {
	containerData, err := s.readArchiveFile("META-INF/container.xml")
	if err != nil {
		return fmt.Errorf("missing epub container: %w", err)
	}
	var container containerXML
	if err := xml.Unmarshal(containerData, &container); err != nil {
		return fmt.Errorf("failed to parse epub container: %w", err)
	}
	if len(container.Rootfiles) == 0 {
		return fmt.Errorf("epub container lists no rootfile")
	}

	opfPath := container.Rootfiles[0].FullPath
	opfData, err := s.readArchiveFile(opfPath)
	if err != nil {
		return fmt.Errorf("missing epub package document: %w", err)
	}
	var pkg packageXML
	if err := xml.Unmarshal(opfData, &pkg); err != nil {
		return fmt.Errorf("failed to parse epub package document: %w", err)
	}

	hrefs := make(map[string]string, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		hrefs[item.ID] = item.Href
	}

	opfDir := path.Dir(opfPath)
	for _, ref := range pkg.Spine.ItemRefs {
		href, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}
		if unescaped, err := url.PathUnescape(href); err == nil {
			href = unescaped
		}
		full := href
		if opfDir != "." {
			full = path.Join(opfDir, href)
		}
		s.spine = append(s.spine, full)
	}

	if len(s.spine) == 0 {
		return fmt.Errorf("epub spine is empty")
	}
	return nil
}

// Next decodes spine documents until one yields enough text to count as
// a chapter, then returns it. io.EOF after the last spine item.
func (s *Source) Next() (*models.Chapter, error) {
	for s.pos < len(s.spine) {
		name := s.spine[s.pos]
		s.pos++

		data, err := s.readArchiveFile(name)
		if err != nil {
			// A broken spine entry degrades to a skipped chapter.
			continue
		}

		text := extractText(name, string(data))
		if len(strings.TrimSpace(text)) < minChapterChars {
			continue
		}

		chapter := &models.Chapter{
			Index: s.index,
			Title: chapterTitle(text, name),
			Text:  text,
		}
		s.index++
		return chapter, nil
	}
	return nil, io.EOF
}

func (s *Source) Close() error {
	return s.zr.Close()
}

func (s *Source) readArchiveFile(name string) ([]byte, error) {
	f, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("file %s not in archive", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// extractText converts one spine document to plain block text.
// go-readability strips navigation and boilerplate when it can; goquery
// flattens whatever survives into newline-separated blocks.
func extractText(name, html string) string {
	if u, err := url.Parse("file:///" + name); err == nil {
		parser := readability.NewParser()
		if article, parseErr := parser.Parse(strings.NewReader(html), u); parseErr == nil {
			if doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(article.Content)); docErr == nil {
				if text := blockText(doc); text != "" {
					return text
				}
			}
			if article.TextContent != "" {
				return article.TextContent
			}
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return blockText(doc)
}

func blockText(doc *goquery.Document) string {
	var sb strings.Builder
	doc.Find("h1,h2,h3,h4,p,li,pre,blockquote").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	})
	if sb.Len() == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return sb.String()
}

// chapterTitle scans the leading lines for something that looks like a
// chapter heading, falling back to the archive file name.
func chapterTitle(text, name string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > titleScanLines {
		lines = lines[:titleScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if titlePattern.MatchString(line) {
			return line
		}
	}
	return path.Base(name)
}
