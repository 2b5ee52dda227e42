// Package models defines the data structures shared across the analysis pipeline.
package models

// Chapter is one titled unit of a document's text, in original order.
// Chapter sources produce these; the analysis core never mutates them.
type Chapter struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ConceptHit records the keyword matches for one (category, topic) pair
// within a single chapter. Examples are short context windows around the
// first few matches and may be empty.
type ConceptHit struct {
	Category string   `json:"category"`
	Topic    string   `json:"topic"`
	Count    int      `json:"count"`
	Examples []string `json:"examples,omitempty"`
}

// ChapterAnalysis is the combined output of the per-chapter passes:
// concept extraction, code/formula detection, and key-sentence extraction.
type ChapterAnalysis struct {
	Index        int          `json:"index"`
	Title        string       `json:"title"`
	ConceptHits  []ConceptHit `json:"concept_hits"`
	HasCode      bool         `json:"has_code"`
	HasFormula   bool         `json:"has_formula"`
	KeySentences []string     `json:"key_sentences"`
}
