// Package pipeline sequences correction, analysis and rewriting of a
// document.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"improver/internal/analyzer"
	"improver/internal/corrector"
	"improver/internal/grammar"
	"improver/internal/lexicon"
	"improver/internal/nlp"
	"improver/internal/readability"
	"improver/internal/rewrite"
	"improver/internal/suggestion"
	"improver/internal/tone"
	"improver/pkg/options"
)

// ErrNoLexicon is returned by New when the config carries no lexicon.
var ErrNoLexicon = errors.New("pipeline: lexicon is required")

type Segmenter interface {
	Segment(text string) (nlp.Document, error)
}

// Speller corrects spelling over a whole text and resolves single words.
type Speller interface {
	CorrectText(text string) corrector.CorrectionResult
	Suggest(word string) (string, bool)
}

type Sentiment interface {
	Polarity(text string) float64
}

type Readability interface {
	Score(text string, metric readability.Metric) (float64, error)
}

// Engines are the collaborators of the pipeline. Segmenter, Sentiment and
// Readability default to the built-in engines; a nil Checker or Speller
// disables the stages using it.
type Engines struct {
	Segmenter   Segmenter
	Checker     grammar.Checker
	Speller     Speller
	Sentiment   Sentiment
	Readability Readability
}

// Recorder receives pipeline measurements.
type Recorder interface {
	ObserveStage(stage string, d time.Duration)
	EngineFailure(engine, reason string)
	Suggestion(source string)
	ObserveDocument(d time.Duration)
}

type Config struct {
	Lexicon *lexicon.Lexicon
	Engines Engines
	Logger  *zap.Logger
	Metrics Recorder
}

// Improver runs the pipeline. It holds no per-document state and is safe
// for concurrent use.
type Improver struct {
	lex     *lexicon.Lexicon
	engines Engines
	opts    options.PipelineOptions
	metrics []readability.Metric
	logger  *zap.Logger
	rec     Recorder
}

// New builds an Improver from cfg and the pipeline options.
func New(cfg Config, opts ...options.Options) (*Improver, error) {
	if cfg.Lexicon == nil {
		return nil, ErrNoLexicon
	}
	o := options.Build(opts...)

	metrics := make([]readability.Metric, 0, len(o.ReadabilityMetrics))
	for _, name := range o.ReadabilityMetrics {
		m, err := readability.ParseMetric(name)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		metrics = append(metrics, m)
	}

	eng := cfg.Engines
	if eng.Segmenter == nil {
		eng.Segmenter = nlp.NewSegmenter()
	}
	if eng.Sentiment == nil {
		eng.Sentiment = tone.NewAnalyzer()
	}
	if eng.Readability == nil {
		eng.Readability = readability.Engine{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rec := cfg.Metrics
	if rec == nil {
		rec = nopRecorder{}
	}

	return &Improver{
		lex:     cfg.Lexicon,
		engines: eng,
		opts:    o,
		metrics: metrics,
		logger:  logger,
		rec:     rec,
	}, nil
}

// Result is the outcome of one Improve call.
type Result struct {
	Original    string                  `json:"original"`
	Corrected   string                  `json:"corrected"`
	Improved    string                  `json:"improved"`
	Suggestions []suggestion.Suggestion `json:"suggestions"`
}

// Messages renders the suggestions in order.
func (r Result) Messages() []string {
	return suggestion.Messages(r.Suggestions)
}

// Improve corrects text, analyzes the corrected text and applies the
// replacement suggestions to it. Engine failures never fail the call: the
// affected analyzer contributes nothing.
func (im *Improver) Improve(ctx context.Context, text string) Result {
	res := Result{Original: text, Corrected: text, Improved: text, Suggestions: []suggestion.Suggestion{}}
	if strings.TrimSpace(text) == "" {
		return res
	}
	start := time.Now()

	corrected, corrections := im.correct(ctx, text)
	res.Corrected = corrected

	t := time.Now()
	doc, ok := call(ctx, im, "segmenter", func(context.Context) (nlp.Document, error) {
		return im.engines.Segmenter.Segment(corrected)
	})
	if !ok {
		doc = nlp.Document{Text: corrected}
	}
	im.rec.ObserveStage("segment", time.Since(t))

	t = time.Now()
	found := im.analyze(ctx, corrected, doc)
	found = append(found, corrections...)
	res.Suggestions = suggestion.Dedupe(found)
	im.rec.ObserveStage("analyze", time.Since(t))

	t = time.Now()
	res.Improved = rewrite.Apply(corrected, Edits(res.Suggestions))
	im.rec.ObserveStage("rewrite", time.Since(t))

	for _, sg := range res.Suggestions {
		im.rec.Suggestion(string(sg.Source))
	}
	im.rec.ObserveDocument(time.Since(start))
	im.logger.Debug("document improved",
		zap.Int("chars", len(text)),
		zap.Int("suggestions", len(res.Suggestions)),
		zap.Duration("took", time.Since(start)))
	return res
}

// ImproveText returns the improved text and the suggestion messages.
func (im *Improver) ImproveText(ctx context.Context, text string) (string, []string) {
	res := im.Improve(ctx, text)
	return res.Improved, res.Messages()
}

// Apply translates plain suggestion messages into edits and applies them to
// text in order. Messages that do not translate are skipped.
func (im *Improver) Apply(text string, messages []string) string {
	var speller suggestion.Speller
	if im.engines.Speller != nil {
		speller = im.engines.Speller
	}
	edits := suggestion.NewTranslator(speller).TranslateAll(messages)
	return rewrite.Apply(text, edits)
}

// Edits returns the edits of the replacement suggestions, in order.
func Edits(list []suggestion.Suggestion) []suggestion.Edit {
	var out []suggestion.Edit
	for _, sg := range list {
		if e, ok := sg.Edit(); ok {
			out = append(out, e)
		}
	}
	return out
}

// correct runs grammar rule correction and then spelling correction. It
// returns the corrected text and the diagnostics of both engines.
func (im *Improver) correct(ctx context.Context, text string) (string, []suggestion.Suggestion) {
	defer func(t time.Time) { im.rec.ObserveStage("correct", time.Since(t)) }(time.Now())

	corrected := text
	var out []suggestion.Suggestion
	if im.opts.Correction && im.engines.Checker != nil {
		matches, ok := call(ctx, im, "grammar", func(ctx context.Context) ([]grammar.Match, error) {
			return im.engines.Checker.Check(ctx, text)
		})
		if ok {
			corrected = grammar.Correct(text, matches)
			out = append(out, analyzer.GrammarCorrections(text, matches)...)
		}
	}
	if im.opts.Spelling && im.engines.Speller != nil {
		in := corrected
		cr, ok := call(ctx, im, "spelling", func(context.Context) (corrector.CorrectionResult, error) {
			return im.engines.Speller.CorrectText(in), nil
		})
		if ok {
			corrected = cr.Corrected
			out = append(out, analyzer.SpellingCorrections(cr.Suggestions)...)
		}
	}
	return corrected, out
}

// analyze runs the analyzers over the corrected text in their fixed order:
// per sentence checks, entities, tone, readability, then clarity.
func (im *Improver) analyze(ctx context.Context, text string, doc nlp.Document) []suggestion.Suggestion {
	var out []suggestion.Suggestion
	for _, sent := range doc.Sentences {
		if sg, ok := analyzer.PassiveVoice(sent); ok {
			out = append(out, sg)
		}
		if sg, ok := analyzer.LongSentence(sent, im.opts.LongSentenceWords); ok {
			out = append(out, sg)
		}
		if im.opts.GrammarMatch && im.engines.Checker != nil {
			matches, ok := call(ctx, im, "grammar", func(ctx context.Context) ([]grammar.Match, error) {
				return im.engines.Checker.Check(ctx, sent.Text)
			})
			if ok {
				out = append(out, analyzer.GrammarMatch(matches, im.lex.GrammarMistakes)...)
			}
		}
	}
	out = append(out, analyzer.EntityAdvice(doc.Entities, im.lex)...)

	tokens := doc.Tokens()
	out = append(out, analyzer.CasualTone(tokens, im.lex)...)
	polarity, ok := call(ctx, im, "sentiment", func(context.Context) (float64, error) {
		return im.engines.Sentiment.Polarity(text), nil
	})
	if ok {
		if sg, breached := analyzer.SentimentTone(polarity, im.opts.NegativePolarity); breached {
			out = append(out, sg)
		}
	}

	var scores []analyzer.Score
	for _, m := range im.metrics {
		v, ok := call(ctx, im, "readability", func(context.Context) (float64, error) {
			return im.engines.Readability.Score(text, m)
		})
		if ok {
			scores = append(scores, analyzer.Score{Metric: m, Value: v})
		}
	}
	out = append(out, analyzer.Readability(scores)...)

	out = append(out, analyzer.Redundancy(text, im.lex.RedundantPhrases)...)
	out = append(out, analyzer.ComplexWords(tokens, im.lex.ComplexWords)...)
	return out
}

type nopRecorder struct{}

func (nopRecorder) ObserveStage(string, time.Duration) {}
func (nopRecorder) EngineFailure(string, string)        {}
func (nopRecorder) Suggestion(string)                   {}
func (nopRecorder) ObserveDocument(time.Duration)       {}
