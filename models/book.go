package models

import "time"

// TopicCount pairs a topic with its aggregate mention count across the book.
type TopicCount struct {
	Category string `json:"category"`
	Topic    string `json:"topic"`
	Count    int    `json:"count"`
}

// BookAnalysis is the complete, serializable result for one document.
// AggregateCounts[category] always equals the sum of per-chapter hit
// counts in that category, and Rating stays within [1,10].
type BookAnalysis struct {
	Identity           string            `json:"document_identity"`
	FileName           string            `json:"file_name"`
	FilePath           string            `json:"file_path"`
	Language           string            `json:"language,omitempty"`
	LanguageConfidence float64           `json:"language_confidence,omitempty"`
	Rating             int               `json:"rating"`
	AnalyzedAt         time.Time         `json:"analyzed_at"`
	Chapters           []ChapterAnalysis `json:"chapters"`
	AggregateCounts    map[string]int    `json:"aggregate_concept_counts"`
	TopTopics          []TopicCount      `json:"top_topics,omitempty"`
}

// ChapterCount returns the number of chapters the analysis covered.
func (b *BookAnalysis) ChapterCount() int {
	return len(b.Chapters)
}

// TotalHits sums the aggregate concept counts across all categories.
func (b *BookAnalysis) TotalHits() int {
	total := 0
	for _, n := range b.AggregateCounts {
		total += n
	}
	return total
}
