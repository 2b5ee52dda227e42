// Package sentences extracts emphasis-bearing sentences from chapter
// text. Sentence splitting is a delimiter heuristic, not linguistics:
// terminal punctuation ends a sentence, and that is good enough for
// spotting "note that ..." style emphasis.
package sentences

import (
	"regexp"
	"strings"
)

const (
	minSentenceLen = 30
	maxSentenceLen = 300
	maxPerChapter  = 5
)

var splitter = regexp.MustCompile(`[.!?]+`)

// Extractor retains sentences that mention any critical keyword.
type Extractor struct {
	keywords []string
}

func NewExtractor(critical []string) *Extractor {
	keywords := make([]string, 0, len(critical))
	for _, kw := range critical {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return &Extractor{keywords: keywords}
}

// Extract splits text on terminal punctuation and keeps sentences of
// reasonable length containing a critical keyword, case-insensitively.
// Duplicates within the chapter are dropped; at most maxPerChapter
// sentences are returned. The same sentence appearing in another chapter
// is kept there too, since repetition signals repeated emphasis.
func (e *Extractor) Extract(text string) []string {
	seen := make(map[string]struct{})
	var kept []string

	for _, raw := range splitter.Split(text, -1) {
		s := strings.Join(strings.Fields(raw), " ")
		if len(s) < minSentenceLen || len(s) > maxSentenceLen {
			continue
		}
		lower := strings.ToLower(s)
		if !e.mentionsKeyword(lower) {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		kept = append(kept, s)
		if len(kept) == maxPerChapter {
			break
		}
	}
	return kept
}

func (e *Extractor) mentionsKeyword(lower string) bool {
	for _, kw := range e.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
