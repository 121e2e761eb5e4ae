// Package readability maps the readability formulas of prose's summarize
// package onto named metrics and difficulty thresholds.
package readability

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jdkato/prose/summarize"
)

// Metric names a readability formula.
type Metric string

const (
	// Flesch reading ease; lower is harder.
	MetricEase Metric = "ease"
	// Flesch–Kincaid grade level.
	MetricGrade Metric = "grade"
	// Gunning fog index.
	MetricFog Metric = "fog"
	// SMOG index.
	MetricComplexity Metric = "complexity"
)

// ErrUnknownMetric is returned for metric names outside the four formulas.
var ErrUnknownMetric = errors.New("readability: unknown metric")

// Metrics lists every supported metric.
var Metrics = []Metric{MetricEase, MetricGrade, MetricFog, MetricComplexity}

// ParseMetric maps a metric name to a Metric.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Metrics {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// Breached reports whether score crosses the metric's difficulty threshold:
// ease below 60, grade above 8, fog above 10, complexity above 12.
func (m Metric) Breached(score float64) bool {
	switch m {
	case MetricEase:
		return score < 60
	case MetricGrade:
		return score > 8
	case MetricFog:
		return score > 10
	case MetricComplexity:
		return score > 12
	}
	return false
}

// Score returns metric for text. Text without words scores 0.
func Score(text string, metric Metric) (float64, error) {
	if _, err := ParseMetric(string(metric)); err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	doc := summarize.NewDocument(text)
	if doc.NumWords == 0 || doc.NumSentences == 0 {
		return 0, nil
	}

	var v float64
	switch metric {
	case MetricEase:
		v = doc.FleschReadingEase()
	case MetricGrade:
		v = doc.FleschKincaid()
	case MetricFog:
		v = doc.GunningFog()
	case MetricComplexity:
		v = doc.SMOG()
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, nil
	}
	return v, nil
}

// Engine is the stateless readability collaborator used by the pipeline.
type Engine struct{}

// Score returns metric for text.
func (Engine) Score(text string, metric Metric) (float64, error) {
	return Score(text, metric)
}
