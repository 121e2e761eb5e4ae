package corrector

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// customFrequency outranks any dictionary count so custom words always win.
const customFrequency = 1_000_000_000

// WordStore persists the custom words a corrector must accept.
type WordStore interface {
	All(ctx context.Context) ([]string, error)
	Add(ctx context.Context, word string) error
	Remove(ctx context.Context, word string) error
}

type SpellCorrector struct {
	config CorrectorConfig
	store  WordStore
	logger *zap.Logger

	mu          sync.RWMutex
	frequencies map[string]float64
	customWords map[string]bool

	logpCache sync.Map // map[string]float64
	distCache sync.Map // map[string]float64, key a+"\x00"+b
}

// NewSpellCorrector loads the "word count" dictionary at dictionaryPath and
// the custom words held by store. store may be nil.
func NewSpellCorrector(ctx context.Context, cfg CorrectorConfig, dictionaryPath string, store WordStore, logger *zap.Logger) (*SpellCorrector, error) {
	freqs, err := loadFrequencies(dictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("load frequencies: %w", err)
	}
	return NewFromFrequencies(ctx, cfg, freqs, store, logger)
}

// NewFromFrequencies builds a corrector over an in-memory word → count map.
func NewFromFrequencies(ctx context.Context, cfg CorrectorConfig, freqs map[string]float64, store WordStore, logger *zap.Logger) (*SpellCorrector, error) {
	if len(freqs) == 0 {
		return nil, ErrEmptyDictionary
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sc := &SpellCorrector{
		config:      cfg,
		store:       store,
		logger:      logger,
		frequencies: make(map[string]float64, len(freqs)),
		customWords: make(map[string]bool),
	}
	for w, f := range freqs {
		sc.frequencies[strings.ToLower(w)] += f
	}
	sc.loadCustomWords(ctx)
	return sc, nil
}

func (sc *SpellCorrector) loadCustomWords(ctx context.Context) {
	if sc.store == nil {
		return
	}
	words, err := sc.store.All(ctx)
	if err != nil {
		sc.logger.Warn("failed to load custom words", zap.Error(err))
		return
	}
	for _, w := range words {
		sc.customWords[strings.ToLower(w)] = true
	}
	sc.logger.Debug("custom words loaded", zap.Int("count", len(words)))
}

// Size returns the number of dictionary and custom words.
func (sc *SpellCorrector) Size() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	n := len(sc.frequencies)
	for w := range sc.customWords {
		if _, ok := sc.frequencies[w]; !ok {
			n++
		}
	}
	return n
}

// CustomWords returns the accepted custom words in sorted order.
func (sc *SpellCorrector) CustomWords() []string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	out := make([]string, 0, len(sc.customWords))
	for w := range sc.customWords {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Known reports whether word is in the dictionary or a custom word.
func (sc *SpellCorrector) Known(word string) bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.known(strings.ToLower(word))
}

func (sc *SpellCorrector) known(lw string) bool {
	if sc.customWords[lw] {
		return true
	}
	_, ok := sc.frequencies[lw]
	return ok
}

// weightedDL is a Damerau–Levenshtein distance with keyboard-aware
// substitution costs. Results are cached per pair.
func (sc *SpellCorrector) weightedDL(a, b string) float64 {
	key := a + "\x00" + b
	if v, ok := sc.distCache.Load(key); ok {
		return v.(float64)
	}
	if isOneAdjacentSwap(a, b) {
		cost := sc.config.TransposeCost
		sc.distCache.Store(key, cost)
		return cost
	}
	insDel := sc.config.NeighborInsDel
	ra := []rune(a)
	rb := []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return float64(lb) * insDel
	}
	if lb == 0 {
		return float64(la) * insDel
	}
	prev2 := make([]float64, lb+1)
	prev := make([]float64, lb+1)
	curr := make([]float64, lb+1)
	for j := 1; j <= lb; j++ {
		prev[j] = float64(j) * insDel
	}
	for i := 1; i <= la; i++ {
		curr[0] = float64(i) * insDel
		for j := 1; j <= lb; j++ {
			sub := 0.0
			if ra[i-1] != rb[j-1] {
				sub = sc.substitutionCost(ra[i-1], rb[j-1])
			}
			best := min(prev[j]+insDel, curr[j-1]+insDel, prev[j-1]+sub)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				best = math.Min(best, prev2[j-2]+sc.config.TransposeCost)
			}
			curr[j] = best
		}
		copy(prev2, prev)
		copy(prev, curr)
	}
	res := prev[lb]
	sc.distCache.Store(key, res)
	return res
}

// logPrior is the log of the temperature-scaled word frequency. Callers hold
// sc.mu.
func (sc *SpellCorrector) logPrior(lw string) float64 {
	if v, ok := sc.logpCache.Load(lw); ok {
		return v.(float64)
	}
	f := sc.frequencies[lw]
	if sc.customWords[lw] {
		f = customFrequency
	}
	if f == 0 {
		f = 1e-12
	}
	lp := math.Log(math.Pow(f, 1.0/sc.config.FreqTemperature))
	sc.logpCache.Store(lw, lp)
	return lp
}

// candidates returns the known words one edit from lw, or two edits when
// none is one edit away. Callers hold sc.mu.
func (sc *SpellCorrector) candidates(lw string) []string {
	seen := map[string]bool{lw: true}
	var out []string
	collect := func(words []string) {
		for _, w := range words {
			if !seen[w] && sc.known(w) {
				out = append(out, w)
			}
			seen[w] = true
		}
	}
	first := edits1(lw)
	collect(first)
	if len(out) > 0 || sc.config.MaxEditDistance < 2 || len(lw) > 15 {
		return out
	}
	for _, e := range first {
		collect(edits1(e))
	}
	return out
}

type verdict struct {
	best     Candidate
	decision string
	hints    []string
}

// judge scores the candidates for an unknown lowercase word. The second
// result is false when no candidate exists. Callers hold sc.mu.
func (sc *SpellCorrector) judge(lw string) (verdict, bool) {
	terms := sc.candidates(lw)
	if len(terms) == 0 {
		return verdict{}, false
	}
	cfg := sc.config
	baseScore := cfg.BetaWeight * sc.logPrior(lw)
	scored := []Candidate{{Term: lw, Score: baseScore}}
	lx := len(lw)

	for _, y := range terms {
		cost := sc.weightedDL(lw, y)
		ed := unitDL(lw, y)
		ly := len(y)
		score := cfg.BetaWeight*sc.logPrior(y) - cfg.LambdaPenalty*cost

		// one-edit bonus: substitution or swap > insertion > deletion
		if ed == 1 {
			switch {
			case ly == lx:
				score += 0.8
			case ly == lx+1:
				score += 0.5
			case ly+1 == lx && lx > 3:
				score += 0.3
			}
		} else if ed >= 2 {
			score -= 0.6
		}
		// short tokens must not collapse into shorter words
		if lx <= 3 && ly < lx {
			score -= 0.6 * float64(lx-ly)
		}
		scored = append(scored, Candidate{Term: y, Cost: cost, Score: score, Edits: ed})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score == scored[j].Score {
			return scored[i].Cost < scored[j].Cost
		}
		return scored[i].Score > scored[j].Score
	})

	bestIdx := 0
	if scored[0].Edits > 1 {
		for k := 1; k < len(scored) && k < 3; k++ {
			if scored[k].Edits == 1 && scored[0].Score-scored[k].Score <= 1.0 {
				bestIdx = k
				break
			}
		}
	}
	best := scored[bestIdx]
	runnerUp := math.Inf(-1)
	for k, c := range scored {
		if k != bestIdx && c.Score > runnerUp {
			runnerUp = c.Score
		}
	}

	margin := best.Score - runnerUp
	gain := best.Score - baseScore
	v := verdict{best: best, decision: DecisionHintOnly}
	if best.Term != lw && margin >= cfg.MarginThreshold && gain >= cfg.GainThreshold {
		v.decision = DecisionAutoReplace
	}
	for _, c := range scored {
		if c.Term != lw && c.Score >= baseScore+0.2 && len(v.hints) < cfg.TopKSuggestions {
			v.hints = append(v.hints, c.Term)
		}
	}

	if ce := sc.logger.Check(zapcore.DebugLevel, "spelling decision"); ce != nil {
		ce.Write(
			zap.String("word", lw),
			zap.String("best", best.Term),
			zap.Float64("margin", margin),
			zap.Float64("gain", gain),
			zap.String("decision", v.decision),
		)
	}
	return v, true
}

// correctable reports whether tok is a candidate for correction. Proper
// nouns (title case away from a sentence start), acronyms, short words and
// known words are left alone.
func (sc *SpellCorrector) correctable(tok string, sentenceStart bool) bool {
	if !isWord(tok) {
		return false
	}
	if sc.config.FilterShortWords && len(tok) <= 2 {
		return false
	}
	if len(tok) > 1 && isUpper(tok) {
		return false
	}
	if isTitle(tok) && !sentenceStart {
		return false
	}
	return !sc.known(strings.ToLower(tok))
}

// CorrectText replaces misspelled words whose best candidate clears the
// margin and gain thresholds, and reports every misspelled word that has at
// least one candidate.
func (sc *SpellCorrector) CorrectText(text string) CorrectionResult {
	tokens := tokenize(text)
	out := make([]string, len(tokens))
	copy(out, tokens)
	var infos []SuggestionInfo

	sc.mu.RLock()
	defer sc.mu.RUnlock()

	offset := 0
	sentenceStart := true
	for i, tok := range tokens {
		pos := offset
		offset += len(tok)
		if tok == "." || tok == "!" || tok == "?" {
			sentenceStart = true
			continue
		}
		if strings.TrimSpace(tok) == "" {
			continue
		}
		first := sentenceStart
		sentenceStart = false
		if !sc.correctable(tok, first) {
			continue
		}
		v, ok := sc.judge(strings.ToLower(tok))
		if !ok {
			continue
		}
		info := SuggestionInfo{Token: tok, Offset: pos, Decision: v.decision}
		for _, h := range v.hints {
			info.Suggestions = append(info.Suggestions, matchCase(tok, h))
		}
		if v.decision == DecisionAutoReplace {
			info.Replacement = matchCase(tok, v.best.Term)
			out[i] = info.Replacement
		}
		if info.Replacement == "" && len(info.Suggestions) == 0 {
			continue
		}
		infos = append(infos, info)
	}

	return CorrectionResult{
		Original:    text,
		Corrected:   strings.Join(out, ""),
		Suggestions: infos,
	}
}

// Suggest returns the best replacement for a misspelled word, keeping its
// case. The second result is false for known words and words without
// candidates.
func (sc *SpellCorrector) Suggest(word string) (string, bool) {
	lw := strings.ToLower(word)
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if !isWord(word) || sc.known(lw) {
		return "", false
	}
	v, ok := sc.judge(lw)
	if !ok || v.best.Term == lw {
		return "", false
	}
	return matchCase(word, v.best.Term), true
}

// AddCustomWord stores word and accepts it from now on.
func (sc *SpellCorrector) AddCustomWord(ctx context.Context, word string) error {
	lw := strings.ToLower(strings.TrimSpace(word))
	if sc.store != nil {
		if err := sc.store.Add(ctx, lw); err != nil {
			return fmt.Errorf("add custom word: %w", err)
		}
	}
	sc.mu.Lock()
	sc.customWords[lw] = true
	sc.logpCache.Delete(lw)
	sc.mu.Unlock()
	return nil
}

// RemoveCustomWord drops word from the store. Dictionary words stay known.
func (sc *SpellCorrector) RemoveCustomWord(ctx context.Context, word string) error {
	lw := strings.ToLower(strings.TrimSpace(word))
	if sc.store != nil {
		if err := sc.store.Remove(ctx, lw); err != nil {
			return fmt.Errorf("remove custom word: %w", err)
		}
	}
	sc.mu.Lock()
	delete(sc.customWords, lw)
	sc.logpCache.Delete(lw)
	sc.mu.Unlock()
	return nil
}

func matchCase(orig, term string) string {
	switch {
	case isTitle(orig):
		return title(term)
	case len(orig) > 1 && isUpper(orig):
		return strings.ToUpper(term)
	}
	return term
}
