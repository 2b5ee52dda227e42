// Package concepts scans chapter text against the concept dictionary
// and produces per-topic hit counts with example context windows.
package concepts

import (
	"sort"
	"strings"
	"unicode/utf8"

	"bookdepth/models"
	"bookdepth/pkg/dictionary"
)

const (
	// contextWindow is the number of characters kept on each side of a
	// matched keyword when capturing an example snippet.
	contextWindow = 50

	examplesPerKeyword = 2
	examplesPerTopic   = 3
)

// Scanner matches dictionary keywords against chapter text. It is safe
// for concurrent use: all state is fixed at construction.
type Scanner struct {
	dict *dictionary.Dictionary
}

func NewScanner(dict *dictionary.Dictionary) *Scanner {
	return &Scanner{dict: dict}
}

// ScanChapter returns one ConceptHit per (category, topic) pair with at
// least one match, in stable category/topic order. Counting policy:
// each keyword is counted by its non-overlapping, case-insensitive
// occurrences; distinct keywords are counted independently even when
// their matches overlap, and the same text may match topics in more
// than one category.
func (s *Scanner) ScanChapter(text string) []models.ConceptHit {
	lower := strings.ToLower(text)

	var hits []models.ConceptHit
	for _, category := range sortedKeys(s.dict.Categories) {
		topics := s.dict.Categories[category]
		for _, topic := range sortedKeys(topics) {
			hit := scanTopic(lower, category, topic, topics[topic])
			if hit.Count > 0 {
				hits = append(hits, hit)
			}
		}
	}
	return hits
}

// Aggregate sums per-chapter hits into category totals.
func Aggregate(chapters []models.ChapterAnalysis) map[string]int {
	totals := make(map[string]int)
	for _, ch := range chapters {
		for _, hit := range ch.ConceptHits {
			totals[hit.Category] += hit.Count
		}
	}
	return totals
}

// TopTopics ranks topics by aggregate mention count, descending, and
// returns the first n. Ties break on category then topic name so the
// output is deterministic.
func TopTopics(chapters []models.ChapterAnalysis, n int) []models.TopicCount {
	type key struct{ category, topic string }
	totals := make(map[key]int)
	for _, ch := range chapters {
		for _, hit := range ch.ConceptHits {
			totals[key{hit.Category, hit.Topic}] += hit.Count
		}
	}

	ranked := make([]models.TopicCount, 0, len(totals))
	for k, count := range totals {
		ranked = append(ranked, models.TopicCount{Category: k.category, Topic: k.topic, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		if ranked[i].Category != ranked[j].Category {
			return ranked[i].Category < ranked[j].Category
		}
		return ranked[i].Topic < ranked[j].Topic
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// DistinctTopics counts topics with at least one hit anywhere in the book.
func DistinctTopics(chapters []models.ChapterAnalysis) int {
	seen := make(map[string]struct{})
	for _, ch := range chapters {
		for _, hit := range ch.ConceptHits {
			seen[hit.Category+"/"+hit.Topic] = struct{}{}
		}
	}
	return len(seen)
}

func scanTopic(lower, category, topic string, keywords []string) models.ConceptHit {
	hit := models.ConceptHit{Category: category, Topic: topic}
	for _, kw := range keywords {
		count, examples := countKeyword(lower, kw)
		hit.Count += count
		for _, ex := range examples {
			if len(hit.Examples) >= examplesPerTopic {
				break
			}
			hit.Examples = append(hit.Examples, ex)
		}
	}
	return hit
}

// countKeyword counts non-overlapping occurrences of kw in lower and
// captures a context window around the first few. A single keyword never
// double-counts overlapping instances of itself: the scan resumes after
// the end of each match.
func countKeyword(lower, kw string) (int, []string) {
	if kw == "" {
		return 0, nil
	}

	var (
		count    int
		examples []string
		pos      int
	)
	for {
		i := strings.Index(lower[pos:], kw)
		if i < 0 {
			break
		}
		start := pos + i
		count++
		if count <= examplesPerKeyword {
			examples = append(examples, snippet(lower, start, start+len(kw)))
		}
		pos = start + len(kw)
	}
	return count, examples
}

// snippet extracts a bounded window around the byte range [from, to),
// widened or narrowed to valid rune boundaries.
func snippet(text string, from, to int) string {
	lo := from - contextWindow
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}

	hi := to + contextWindow
	if hi > len(text) {
		hi = len(text)
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}

	return strings.Join(strings.Fields(text[lo:hi]), " ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
