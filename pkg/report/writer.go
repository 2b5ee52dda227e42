// Package report renders a BookAnalysis into its JSON and Markdown
// artifacts and maintains the master ranking summary.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"bookdepth/models"
	"bookdepth/pkg/ledger"
	"bookdepth/pkg/storage"
)

const MasterSummaryName = "MASTER_SUMMARY.md"

var unsafeChars = regexp.MustCompile(`[^\w\s-]`)

// Writer emits report files under a single output directory.
type Writer struct {
	outputDir string
}

func NewWriter(outputDir string) (*Writer, error) {
	if err := storage.EnsureDir(outputDir); err != nil {
		return nil, err
	}
	return &Writer{outputDir: outputDir}, nil
}

// WriteBook writes the JSON analysis and the Markdown summary for one
// book. Both writes are atomic. Returns the JSON report path, which the
// ledger stores for partial-failure detection.
func (w *Writer) WriteBook(book *models.BookAnalysis) (string, error) {
	base := SafeFileName(strings.TrimSuffix(book.FileName, filepath.Ext(book.FileName)))

	jsonPath := filepath.Join(w.outputDir, base+".analysis.json")
	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis: %w", err)
	}
	if err := storage.WriteAtomic(jsonPath, data); err != nil {
		return "", err
	}

	mdPath := filepath.Join(w.outputDir, base+".summary.md")
	if err := storage.WriteAtomic(mdPath, []byte(bookMarkdown(book))); err != nil {
		return "", err
	}
	return jsonPath, nil
}

// WriteMaster renders the ranking summary for all ledger entries.
func (w *Writer) WriteMaster(entries []ledger.Entry) (string, error) {
	var sb strings.Builder
	sb.WriteString("# Book Analysis — Master Summary\n\n")
	sb.WriteString(fmt.Sprintf("**Last Updated**: %s\n\n", time.Now().UTC().Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Total Books**: %d\n\n", len(entries)))
	sb.WriteString("---\n\n")
	sb.WriteString("## All Books (Sorted by Rating)\n\n")
	sb.WriteString("| Rating | File | Chapters | Analyzed |\n")
	sb.WriteString("|--------|------|----------|----------|\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("| **%d/10** | %s | %d | %s |\n",
			e.Rating, e.FileName, e.ChapterCount, e.AnalyzedAt.Format("2006-01-02")))
	}

	path := filepath.Join(w.outputDir, MasterSummaryName)
	if err := storage.WriteAtomic(path, []byte(sb.String())); err != nil {
		return "", err
	}
	return path, nil
}

func bookMarkdown(book *models.BookAnalysis) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Analysis: %s\n\n", book.FileName))
	sb.WriteString(fmt.Sprintf("**Rating**: %d/10\n\n", book.Rating))
	sb.WriteString(fmt.Sprintf("**Analyzed**: %s\n\n", book.AnalyzedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Chapters**: %d\n\n", book.ChapterCount()))
	if book.Language != "" {
		sb.WriteString(fmt.Sprintf("**Language**: %s (%.2f)\n\n", book.Language, book.LanguageConfidence))
	}
	sb.WriteString("---\n\n")

	sb.WriteString("## Summary Stats\n\n")
	for _, category := range sortedCategories(book.AggregateCounts) {
		sb.WriteString(fmt.Sprintf("- %s concepts found: **%d**\n", category, book.AggregateCounts[category]))
	}
	codeChapters, formulaChapters := 0, 0
	for _, ch := range book.Chapters {
		if ch.HasCode {
			codeChapters++
		}
		if ch.HasFormula {
			formulaChapters++
		}
	}
	sb.WriteString(fmt.Sprintf("- Chapters with code: **%d/%d**\n", codeChapters, book.ChapterCount()))
	sb.WriteString(fmt.Sprintf("- Chapters with formulas: **%d/%d**\n\n", formulaChapters, book.ChapterCount()))

	if len(book.TopTopics) > 0 {
		sb.WriteString("## Top Concepts\n\n")
		for _, tc := range book.TopTopics {
			sb.WriteString(fmt.Sprintf("- **%s/%s**: %d mentions\n", tc.Category, tc.Topic, tc.Count))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n## Chapter-by-Chapter Breakdown\n\n")
	for i, ch := range book.Chapters {
		sb.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, ch.Title))
		if len(ch.ConceptHits) > 0 {
			sb.WriteString("**Concepts:**\n")
			for _, hit := range ch.ConceptHits {
				sb.WriteString(fmt.Sprintf("- %s/%s: %d mentions\n", hit.Category, hit.Topic, hit.Count))
			}
			sb.WriteString("\n")
		}
		if len(ch.KeySentences) > 0 {
			sb.WriteString("**Key Takeaways:**\n")
			for _, sentence := range ch.KeySentences {
				sb.WriteString(fmt.Sprintf("> %s\n\n", sentence))
			}
		}
	}
	return sb.String()
}

// SafeFileName strips characters unsafe for filenames and bounds length.
func SafeFileName(name string) string {
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	name = strings.Join(strings.Fields(name), "_")
	if len(name) > 50 {
		name = name[:50]
	}
	if name == "" {
		name = "book"
	}
	return name
}

func sortedCategories(counts map[string]int) []string {
	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
