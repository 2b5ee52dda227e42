// Package analyzer runs the per-chapter analysis passes over a chapter
// source and assembles the complete BookAnalysis for a document. The
// passes are read-only and independent; chapters are consumed one at a
// time so peak memory stays bounded for very large documents.
package analyzer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"bookdepth/models"
	"bookdepth/pkg/concepts"
	"bookdepth/pkg/dictionary"
	"bookdepth/pkg/langid"
	"bookdepth/pkg/rating"
	"bookdepth/pkg/sentences"
	"bookdepth/pkg/signals"
)

// topTopicLimit caps the ranked topic list carried on a BookAnalysis.
const topTopicLimit = 10

// ChapterSource yields the ordered chapters of one document. Next
// returns io.EOF after the final chapter. Sources are single-use;
// restarting means constructing a new one.
type ChapterSource interface {
	Next() (*models.Chapter, error)
	Close() error
}

// Analyzer holds the engines for one run. Safe for concurrent use:
// every field is fixed at construction.
type Analyzer struct {
	scanner   *concepts.Scanner
	detector  *signals.Detector
	sentences *sentences.Extractor
	calc      *rating.Calculator
	langs     *langid.Detector
	now       func() time.Time
}

// New builds an Analyzer from the loaded dictionary. langs may be nil
// to skip language detection.
func New(dict *dictionary.Dictionary, langs *langid.Detector) *Analyzer {
	return &Analyzer{
		scanner:   concepts.NewScanner(dict),
		detector:  signals.NewDetector(dict.CodeMarkers, dict.FormulaMarkers),
		sentences: sentences.NewExtractor(dict.CriticalKeywords),
		calc:      rating.NewCalculator(dict.Rating),
		langs:     langs,
		now:       time.Now,
	}
}

// AnalyzeBook drains the source and returns the assembled BookAnalysis.
// A document with zero chapters is a valid, repeatable result: it gets
// the floor rating of 1. A chapter read error mid-stream degrades the
// book to the chapters already read; the partial analysis is returned
// together with the error so the caller can both record and report it.
func (a *Analyzer) AnalyzeBook(identity, filePath string, source ChapterSource) (*models.BookAnalysis, error) {
	defer source.Close()

	var (
		chapters  []models.ChapterAnalysis
		sample    strings.Builder
		streamErr error
	)

	for {
		chapter, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			streamErr = fmt.Errorf("chapter read failed after %d chapters: %w", len(chapters), err)
			break
		}

		chapters = append(chapters, a.analyzeChapter(chapter))
		if sample.Len() < langid.SampleLimit {
			sample.WriteString(chapter.Text)
			sample.WriteString("\n")
		}
	}

	book := a.assemble(identity, filePath, chapters, sample.String())
	return book, streamErr
}

// analyzeChapter runs the three passes over one chapter. Malformed text
// (invalid UTF-8) yields a zero-signal analysis for that chapter rather
// than failing the book.
func (a *Analyzer) analyzeChapter(chapter *models.Chapter) models.ChapterAnalysis {
	analysis := models.ChapterAnalysis{
		Index: chapter.Index,
		Title: chapter.Title,
	}
	if !utf8.ValidString(chapter.Text) {
		return analysis
	}

	analysis.ConceptHits = a.scanner.ScanChapter(chapter.Text)
	analysis.HasCode = a.detector.HasCode(chapter.Text)
	analysis.HasFormula = a.detector.HasFormula(chapter.Text)
	analysis.KeySentences = a.sentences.Extract(chapter.Text)
	return analysis
}

func (a *Analyzer) assemble(identity, filePath string, chapters []models.ChapterAnalysis, sample string) *models.BookAnalysis {
	book := &models.BookAnalysis{
		Identity:        identity,
		FilePath:        filePath,
		FileName:        baseName(filePath),
		Chapters:        chapters,
		AggregateCounts: concepts.Aggregate(chapters),
		TopTopics:       concepts.TopTopics(chapters, topTopicLimit),
		AnalyzedAt:      a.now().UTC(),
	}

	signalChapters := 0
	keySentences := 0
	for _, ch := range chapters {
		if ch.HasCode || ch.HasFormula {
			signalChapters++
		}
		keySentences += len(ch.KeySentences)
	}

	book.Rating = a.calc.Calculate(rating.Aggregate{
		TotalHits:      book.TotalHits(),
		ChapterCount:   len(chapters),
		SignalChapters: signalChapters,
		KeySentences:   keySentences,
		DistinctTopics: concepts.DistinctTopics(chapters),
	})

	if a.langs != nil {
		book.Language, book.LanguageConfidence = a.langs.Detect(sample)
	}
	return book
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
