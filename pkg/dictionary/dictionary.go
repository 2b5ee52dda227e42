// Package dictionary loads the matching configuration for the analysis
// engine: the category -> topic -> keyword dictionary, the code and
// formula marker sets, the critical-keyword list, and the rating
// thresholds. The loaded value is immutable for the duration of a run
// and is passed explicitly into every component that matches text.
package dictionary

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a dictionary that cannot support scoring. Scoring
// against an empty keyword set would corrupt every rating, so callers
// must treat this as fatal before any document is processed.
var ErrInvalid = errors.New("concept dictionary invalid")

// Thresholds holds the rating policy cut points. Each list must be
// strictly increasing; a sub-score is the number of cut points at or
// below the measured value. These are tunable policy constants, kept
// apart from the extraction logic.
type Thresholds struct {
	CoverageCuts       []int     `yaml:"coverage_cuts"`
	SignalFractionCuts []float64 `yaml:"signal_fraction_cuts"`
	SentenceCuts       []int     `yaml:"sentence_cuts"`
	BreadthCuts        []int     `yaml:"breadth_cuts"`
}

// Dictionary is the full matching configuration.
type Dictionary struct {
	Categories       map[string]map[string][]string `yaml:"categories"`
	CodeMarkers      []string                       `yaml:"code_markers"`
	FormulaMarkers   []string                       `yaml:"formula_markers"`
	CriticalKeywords []string                       `yaml:"critical_keywords"`
	Rating           Thresholds                     `yaml:"rating"`
}

// Load reads a dictionary from path. A missing file yields the built-in
// defaults; a present but unreadable or invalid file is an error.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read dictionary config: %w", err)
	}

	var dict Dictionary
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalid, path, err)
	}

	dict.normalize()
	if err := dict.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &dict, nil
}

// Save writes the dictionary to path as YAML.
func Save(path string, dict *Dictionary) error {
	data, err := yaml.Marshal(dict)
	if err != nil {
		return fmt.Errorf("failed to marshal dictionary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dictionary config: %w", err)
	}
	return nil
}

// normalize lowercases and deduplicates every keyword list, preserving
// first-seen order, and fills missing sections from the defaults.
func (d *Dictionary) normalize() {
	for category, topics := range d.Categories {
		for topic, keywords := range topics {
			topics[topic] = dedupeLower(keywords)
		}
		d.Categories[category] = topics
	}
	d.CriticalKeywords = dedupeLower(d.CriticalKeywords)

	defaults := Default()
	if len(d.CodeMarkers) == 0 {
		d.CodeMarkers = defaults.CodeMarkers
	}
	if len(d.FormulaMarkers) == 0 {
		d.FormulaMarkers = defaults.FormulaMarkers
	}
	if len(d.CriticalKeywords) == 0 {
		d.CriticalKeywords = defaults.CriticalKeywords
	}
	if len(d.Rating.CoverageCuts) == 0 {
		d.Rating.CoverageCuts = defaults.Rating.CoverageCuts
	}
	if len(d.Rating.SignalFractionCuts) == 0 {
		d.Rating.SignalFractionCuts = defaults.Rating.SignalFractionCuts
	}
	if len(d.Rating.SentenceCuts) == 0 {
		d.Rating.SentenceCuts = defaults.Rating.SentenceCuts
	}
	if len(d.Rating.BreadthCuts) == 0 {
		d.Rating.BreadthCuts = defaults.Rating.BreadthCuts
	}
}

// Validate checks that the dictionary can support meaningful scoring.
func (d *Dictionary) Validate() error {
	if len(d.Categories) == 0 {
		return fmt.Errorf("%w: no categories defined", ErrInvalid)
	}

	keywordCount := 0
	for category, topics := range d.Categories {
		if len(topics) == 0 {
			return fmt.Errorf("%w: category %q has no topics", ErrInvalid, category)
		}
		for topic, keywords := range topics {
			if len(keywords) == 0 {
				return fmt.Errorf("%w: topic %q/%q has no keywords", ErrInvalid, category, topic)
			}
			keywordCount += len(keywords)
		}
	}
	if keywordCount == 0 {
		return fmt.Errorf("%w: no keywords defined", ErrInvalid)
	}

	if err := ascendingInts(d.Rating.CoverageCuts); err != nil {
		return fmt.Errorf("%w: coverage_cuts: %v", ErrInvalid, err)
	}
	if err := ascendingInts(d.Rating.SentenceCuts); err != nil {
		return fmt.Errorf("%w: sentence_cuts: %v", ErrInvalid, err)
	}
	if err := ascendingInts(d.Rating.BreadthCuts); err != nil {
		return fmt.Errorf("%w: breadth_cuts: %v", ErrInvalid, err)
	}
	if err := ascendingFloats(d.Rating.SignalFractionCuts); err != nil {
		return fmt.Errorf("%w: signal_fraction_cuts: %v", ErrInvalid, err)
	}
	return nil
}

// TopicCount returns the number of distinct topics across all categories.
func (d *Dictionary) TopicCount() int {
	n := 0
	for _, topics := range d.Categories {
		n += len(topics)
	}
	return n
}

func dedupeLower(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

func ascendingInts(cuts []int) error {
	for i := 1; i < len(cuts); i++ {
		if cuts[i] <= cuts[i-1] {
			return fmt.Errorf("cut points must be strictly increasing, got %v", cuts)
		}
	}
	return nil
}

func ascendingFloats(cuts []float64) error {
	for i := 1; i < len(cuts); i++ {
		if cuts[i] <= cuts[i-1] {
			return fmt.Errorf("cut points must be strictly increasing, got %v", cuts)
		}
	}
	return nil
}
