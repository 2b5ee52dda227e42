// Package signals holds the per-chapter boolean content detectors: one
// for source code, one for mathematical notation. Both are heuristic
// and deliberately over-inclusive; a false positive costs nothing but a
// slightly generous rating, while a false negative understates depth.
package signals

import (
	"regexp"
	"strings"
)

// Structural patterns that complement the configured marker lists.
var (
	fencedBlock = regexp.MustCompile("(?s)```.+?```")
	inlineMath  = regexp.MustCompile(`\$[^$\n]+\$`)
	exprFormula = regexp.MustCompile(`=.*\+.*\*`)
)

// Detector classifies chapter text using small fixed marker sets
// supplied by the dictionary config.
type Detector struct {
	codeMarkers    []string
	formulaMarkers []string
}

func NewDetector(codeMarkers, formulaMarkers []string) *Detector {
	return &Detector{
		codeMarkers:    codeMarkers,
		formulaMarkers: formulaMarkers,
	}
}

// HasCode reports whether the chapter contains source-code markers or a
// fenced literal block.
func (d *Detector) HasCode(text string) bool {
	for _, marker := range d.codeMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return fencedBlock.MatchString(text)
}

// HasFormula reports whether the chapter contains mathematical notation:
// a configured macro marker, delimited inline math, or an
// assignment-style arithmetic expression.
func (d *Detector) HasFormula(text string) bool {
	for _, marker := range d.formulaMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return inlineMath.MatchString(text) || exprFormula.MatchString(text)
}
