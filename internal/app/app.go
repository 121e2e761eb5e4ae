// Package app wires the improver components from a configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"improver/internal/config"
	"improver/internal/corrector"
	"improver/internal/customdict"
	"improver/internal/grammar"
	"improver/internal/lexicon"
	"improver/internal/metrics"
	"improver/internal/pipeline"
)

// ErrNoCustomDict is returned by the custom word operations when neither a
// dictionary nor Redis is configured.
var ErrNoCustomDict = errors.New("custom dictionary is not configured")

// App holds the components built from a Config. Speller and Dict are nil
// when their resources are not configured.
type App struct {
	Improver *pipeline.Improver
	Speller  *corrector.SpellCorrector
	Dict     *customdict.CustomDict
	Metrics  *metrics.Collector

	redis  *redis.Client
	logger *zap.Logger
}

// New loads the lexicon and dictionary, connects to Redis and builds the
// pipeline. Redis being unreachable at startup is logged, not fatal.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{Metrics: metrics.NewCollector("improver"), logger: logger}

	lex, err := loadLexicon(cfg.LexiconPath)
	if err != nil {
		return nil, err
	}

	var store corrector.WordStore
	if cfg.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.Dict = customdict.New(a.redis, cfg.RedisKey)
		store = a.Dict

		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := a.Dict.Ping(pctx); err != nil {
			logger.Warn("redis unreachable, custom words unavailable until it recovers",
				zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()
	}

	engines := pipeline.Engines{Checker: newChecker(cfg, logger)}
	if engines.Checker == nil {
		rc, err := grammar.NewRuleChecker(grammar.DefaultRules())
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("grammar rules: %w", err)
		}
		engines.Checker = rc
	}

	if cfg.DictionaryPath != "" {
		a.Speller, err = corrector.NewSpellCorrector(ctx, corrector.DefaultConfig(), cfg.DictionaryPath, store, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("spelling dictionary: %w", err)
		}
		engines.Speller = a.Speller
		logger.Info("spelling dictionary loaded",
			zap.String("path", cfg.DictionaryPath),
			zap.Int("words", a.Speller.Size()))
	}

	if cfg.IsDebug() {
		logger.Debug("pipeline settings",
			zap.Int("long_sentence_words", cfg.LongSentenceWords),
			zap.Float64("negative_polarity", cfg.NegativePolarity),
			zap.Strings("readability_metrics", cfg.ReadabilityMetrics),
			zap.Duration("call_timeout", cfg.CallTimeout),
			zap.Bool("no_correction", cfg.NoCorrection),
			zap.Bool("languagetool", cfg.LanguageToolURL != ""))
	}

	a.Improver, err = pipeline.New(pipeline.Config{
		Lexicon: lex,
		Engines: engines,
		Logger:  logger,
		Metrics: a.Metrics,
	}, cfg.PipelineOptions()...)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.Default()
	}
	return lexicon.Load(path)
}

// newChecker returns the LanguageTool client when a server is configured.
func newChecker(cfg *config.Config, logger *zap.Logger) grammar.Checker {
	if cfg.LanguageToolURL == "" {
		return nil
	}
	client := &http.Client{Timeout: cfg.CallTimeout}
	return grammar.NewLanguageTool(cfg.LanguageToolURL, cfg.LanguageToolLanguage, client, grammar.DefaultBreakerConfig(), logger)
}

// HasCustomWords reports whether the custom word operations are available.
func (a *App) HasCustomWords() bool {
	return a.Speller != nil || a.Dict != nil
}

// AddCustomWord stores word through the spelling corrector, which also
// accepts it immediately, or straight into Redis without one.
func (a *App) AddCustomWord(ctx context.Context, word string) error {
	switch {
	case a.Speller != nil:
		return a.Speller.AddCustomWord(ctx, word)
	case a.Dict != nil:
		return a.Dict.Add(ctx, word)
	}
	return ErrNoCustomDict
}

func (a *App) RemoveCustomWord(ctx context.Context, word string) error {
	switch {
	case a.Speller != nil:
		return a.Speller.RemoveCustomWord(ctx, word)
	case a.Dict != nil:
		return a.Dict.Remove(ctx, word)
	}
	return ErrNoCustomDict
}

// CustomWords lists the custom words in sorted order. Redis is the source
// of truth when configured.
func (a *App) CustomWords(ctx context.Context) ([]string, error) {
	switch {
	case a.Dict != nil:
		words, err := a.Dict.All(ctx)
		if err != nil {
			return nil, err
		}
		sort.Strings(words)
		return words, nil
	case a.Speller != nil:
		return a.Speller.CustomWords(), nil
	}
	return nil, ErrNoCustomDict
}

// IsCustomWord reports whether word was added as a custom word.
func (a *App) IsCustomWord(ctx context.Context, word string) (bool, error) {
	switch {
	case a.Dict != nil:
		return a.Dict.Contains(ctx, word)
	case a.Speller != nil:
		_, found := slices.BinarySearch(a.Speller.CustomWords(), strings.ToLower(strings.TrimSpace(word)))
		return found, nil
	}
	return false, ErrNoCustomDict
}

// Ping checks the Redis connection when one is configured.
func (a *App) Ping(ctx context.Context) error {
	if a.Dict == nil {
		return nil
	}
	return a.Dict.Ping(ctx)
}

// Close releases the Redis connection.
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Close()
}
