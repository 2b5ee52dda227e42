// Package langid identifies the dominant language of a book from a
// bounded text sample, using lingua-go.
package langid

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// SampleLimit bounds how much text the detector reads. Language is
// stable after a few paragraphs; feeding whole books in wastes time.
const SampleLimit = 4096

// Detector wraps a lingua detector restricted to the languages books in
// scope actually appear in. Building the detector is expensive, so one
// instance is shared across a run.
type Detector struct {
	inner lingua.LanguageDetector
}

func New() *Detector {
	languages := []lingua.Language{
		lingua.English, lingua.Spanish, lingua.French, lingua.German,
		lingua.Italian, lingua.Portuguese, lingua.Russian,
	}
	return &Detector{
		inner: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// Detect returns the ISO 639-1 code and confidence for sample, or
// ("", 0) when the sample is empty or no language can be identified.
func (d *Detector) Detect(sample string) (string, float64) {
	if len(sample) > SampleLimit {
		sample = sample[:SampleLimit]
	}
	sample = strings.TrimSpace(sample)
	if sample == "" {
		return "", 0
	}

	lang, ok := d.inner.DetectLanguageOf(sample)
	if !ok {
		return "", 0
	}
	confidence := d.inner.ComputeLanguageConfidence(sample, lang)
	return strings.ToLower(lang.IsoCode639_1().String()), confidence
}
