// Package rating turns whole-book aggregates into a bounded 1-10 depth
// score. The calculator sees only aggregate numbers, never text, so it
// is trivially deterministic and testable in isolation.
package rating

import "bookdepth/pkg/dictionary"

// Aggregate is the calculator input: book-level totals only.
type Aggregate struct {
	TotalHits      int // concept hits summed across all categories
	ChapterCount   int
	SignalChapters int // chapters with code or formulas
	KeySentences   int // key sentences summed across all chapters
	DistinctTopics int // topics with at least one hit anywhere
}

// Calculator computes the depth score from policy cut points. Each
// sub-score is the number of cut points at or below the measured value,
// which keeps every sub-score monotonic and saturating by construction.
type Calculator struct {
	t dictionary.Thresholds
}

func NewCalculator(t dictionary.Thresholds) *Calculator {
	return &Calculator{t: t}
}

// Calculate returns the rating in [1,10]. The four sub-scores are
// concept coverage (0-4), code/formula presence (0-2), key-sentence
// yield (0-2), and topic breadth (0-2); their sum is clamped so a book
// with zero signal anywhere still reports the floor of 1.
func (c *Calculator) Calculate(a Aggregate) int {
	score := c.Coverage(a.TotalHits) +
		c.signalPresence(a.SignalChapters, a.ChapterCount) +
		countCutsInt(c.t.SentenceCuts, a.KeySentences) +
		countCutsInt(c.t.BreadthCuts, a.DistinctTopics)

	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score
}

// Coverage is the 0-4 concept-coverage sub-score, monotonic
// non-decreasing in the total hit count.
func (c *Calculator) Coverage(totalHits int) int {
	return countCutsInt(c.t.CoverageCuts, totalHits)
}

func (c *Calculator) signalPresence(signalChapters, chapterCount int) int {
	if chapterCount == 0 {
		return 0
	}
	frac := float64(signalChapters) / float64(chapterCount)
	n := 0
	for _, cut := range c.t.SignalFractionCuts {
		if frac >= cut {
			n++
		}
	}
	return n
}

func countCutsInt(cuts []int, v int) int {
	n := 0
	for _, cut := range cuts {
		if v >= cut {
			n++
		}
	}
	return n
}
