package options

import "time"

// DefaultOptions is the pipeline tuning used when no option is given.
var DefaultOptions = PipelineOptions{
	LongSentenceWords:  20,
	NegativePolarity:   -0.5,
	ReadabilityMetrics: []string{"ease", "complexity"},
	CallTimeout:        5 * time.Second,
	Correction:         true,
	Spelling:           true,
	GrammarMatch:       true,
}

type PipelineOptions struct {
	LongSentenceWords  int           // sentences with more words are flagged
	NegativePolarity   float64       // polarity below this is a negative tone
	ReadabilityMetrics []string      // subset of ease, grade, fog, complexity
	CallTimeout        time.Duration // per engine call; zero disables the bound
	Correction         bool          // grammar rule correction before analysis
	Spelling           bool          // spelling correction before analysis
	GrammarMatch       bool          // per-sentence grammar mistake lookup
}

type Options interface {
	Apply(options *PipelineOptions)
}

type FuncConfig struct {
	ops func(options *PipelineOptions)
}

func (w FuncConfig) Apply(conf *PipelineOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *PipelineOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Build applies opts over a copy of DefaultOptions.
func Build(opts ...Options) PipelineOptions {
	o := DefaultOptions
	o.ReadabilityMetrics = append([]string(nil), DefaultOptions.ReadabilityMetrics...)
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(&o)
		}
	}
	return o
}

func WithLongSentenceWords(words int) Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.LongSentenceWords = words
	})
}

func WithNegativePolarity(threshold float64) Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.NegativePolarity = threshold
	})
}

// WithReadabilityMetrics replaces the metric subset. No metrics disables
// the readability analyzer.
func WithReadabilityMetrics(metrics ...string) Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.ReadabilityMetrics = append([]string(nil), metrics...)
	})
}

func WithCallTimeout(d time.Duration) Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.CallTimeout = d
	})
}

// WithoutCorrection analyzes the input as is: no grammar or spelling
// correction runs first.
func WithoutCorrection() Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.Correction = false
		options.Spelling = false
	})
}

func WithoutSpelling() Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.Spelling = false
	})
}

func WithoutGrammarMatch() Options {
	return NewFuncOption(func(options *PipelineOptions) {
		options.GrammarMatch = false
	})
}
