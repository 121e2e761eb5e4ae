package corrector

const (
	DecisionAutoReplace = "auto_replace"
	DecisionHintOnly    = "hint_only"
)

type CorrectorConfig struct {
	MaxEditDistance  int
	FreqTemperature  float64
	TopKSuggestions  int
	BetaWeight       float64
	LambdaPenalty    float64
	MarginThreshold  float64
	GainThreshold    float64
	FilterShortWords bool
	TransposeCost    float64
	NeighborInsDel   float64
	KeyboardNearSub  float64
}

// DefaultConfig returns the tuning used by the service binaries.
func DefaultConfig() CorrectorConfig {
	return CorrectorConfig{
		MaxEditDistance:  2,
		FreqTemperature:  2.0,
		TopKSuggestions:  5,
		BetaWeight:       1.0,
		LambdaPenalty:    0.9,
		MarginThreshold:  0.25,
		GainThreshold:    0.3,
		FilterShortWords: true,
		TransposeCost:    0.6,
		NeighborInsDel:   0.9,
		KeyboardNearSub:  0.6,
	}
}

type Candidate struct {
	Term  string
	Cost  float64
	Score float64
	Edits int
}

// SuggestionInfo describes one misspelled token. Offset is the byte position
// of Token in the original text.
type SuggestionInfo struct {
	Token       string   `json:"token"`
	Offset      int      `json:"offset"`
	Replacement string   `json:"replacement,omitempty"`
	Suggestions []string `json:"suggestions"`
	Decision    string   `json:"decision"`
}

type CorrectionResult struct {
	Original    string           `json:"original"`
	Corrected   string           `json:"corrected"`
	Suggestions []SuggestionInfo `json:"suggestions"`
}
