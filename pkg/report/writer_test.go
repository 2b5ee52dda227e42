package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bookdepth/models"
	"bookdepth/pkg/ledger"
)

func testBook() *models.BookAnalysis {
	return &models.BookAnalysis{
		Identity:   "abc123",
		FileName:   "Quant Trading: Vol 1.epub",
		FilePath:   "/books/Quant Trading: Vol 1.epub",
		Rating:     6,
		AnalyzedAt: time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC),
		Chapters: []models.ChapterAnalysis{
			{
				Index: 0,
				Title: "Chapter 1. Risk",
				ConceptHits: []models.ConceptHit{
					{Category: "trading", Topic: "risk", Count: 4, Examples: []string{"the drawdown was deep"}},
				},
				HasCode:      true,
				KeySentences: []string{"It is important to size positions before entry"},
			},
			{Index: 1, Title: "Chapter 2. Patience"},
		},
		AggregateCounts: map[string]int{"trading": 4},
		TopTopics:       []models.TopicCount{{Category: "trading", Topic: "risk", Count: 4}},
	}
}

func TestWriteBook(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	jsonPath, err := w.WriteBook(testBook())
	if err != nil {
		t.Fatalf("WriteBook() error = %v", err)
	}
	if filepath.Dir(jsonPath) != dir {
		t.Errorf("report written outside output dir: %s", jsonPath)
	}
	if !strings.HasSuffix(jsonPath, ".analysis.json") {
		t.Errorf("unexpected report name: %s", jsonPath)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded["document_identity"] != "abc123" {
		t.Errorf("document_identity = %v, want abc123", decoded["document_identity"])
	}
	if decoded["rating"] != float64(6) {
		t.Errorf("rating = %v, want 6", decoded["rating"])
	}
	if _, ok := decoded["aggregate_concept_counts"]; !ok {
		t.Error("aggregate_concept_counts missing from report")
	}

	mdPath := strings.TrimSuffix(jsonPath, ".analysis.json") + ".summary.md"
	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("summary markdown missing: %v", err)
	}
	for _, want := range []string{
		"**Rating**: 6/10",
		"Chapter 1. Risk",
		"trading concepts found: **4**",
		"Chapters with code: **1/2**",
		"> It is important to size positions before entry",
	} {
		if !strings.Contains(string(md), want) {
			t.Errorf("summary markdown missing %q", want)
		}
	}
}

func TestWriteBook_SanitizesFileName(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatal(err)
	}

	jsonPath, err := w.WriteBook(testBook())
	if err != nil {
		t.Fatalf("WriteBook() error = %v", err)
	}
	base := filepath.Base(jsonPath)
	if strings.ContainsAny(base, ": ") {
		t.Errorf("unsafe characters survived in %q", base)
	}
}

func TestWriteMaster(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatal(err)
	}

	entries := []ledger.Entry{
		{Identity: "a", FileName: "deep.epub", Rating: 9, ChapterCount: 10, AnalyzedAt: time.Now()},
		{Identity: "b", FileName: "shallow.pdf", Rating: 2, ChapterCount: 3, AnalyzedAt: time.Now()},
	}
	path, err := w.WriteMaster(entries)
	if err != nil {
		t.Fatalf("WriteMaster() error = %v", err)
	}
	if filepath.Base(path) != MasterSummaryName {
		t.Errorf("master summary at %s, want %s", path, MasterSummaryName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "**Total Books**: 2") {
		t.Error("book count missing from master summary")
	}
	deepIdx := strings.Index(content, "deep.epub")
	shallowIdx := strings.Index(content, "shallow.pdf")
	if deepIdx < 0 || shallowIdx < 0 {
		t.Fatal("entries missing from master summary")
	}
	if deepIdx > shallowIdx {
		t.Error("entries not in the given rating order")
	}
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Quant Trading: Vol 1", "Quant_Trading_Vol_1"},
		{"simple", "simple"},
		{"a/b\\c", "abc"},
		{"", "book"},
		{"???", "book"},
		{strings.Repeat("x", 80), strings.Repeat("x", 50)},
	}
	for _, tt := range tests {
		if got := SafeFileName(tt.in); got != tt.want {
			t.Errorf("SafeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
