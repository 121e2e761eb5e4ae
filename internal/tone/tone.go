// Package tone scores the sentiment polarity of English text with VADER.
package tone

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"
)

// VADER's negation list only knows the ASCII apostrophe.
var apostrophes = strings.NewReplacer("’", "'", "‘", "'")

// Analyzer is safe for concurrent use.
type Analyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer returns an Analyzer over the VADER lexicon bundled with
// govader.
func NewAnalyzer() *Analyzer {
	return &Analyzer{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns the compound VADER score of text, in [-1, 1]. Text
// without sentiment bearing words scores 0.
func (a *Analyzer) Polarity(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	p := a.sia.PolarityScores(apostrophes.Replace(text)).Compound
	if math.IsNaN(p) {
		return 0
	}
	return math.Max(-1, math.Min(1, p))
}
