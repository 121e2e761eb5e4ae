package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// LanguageTool is a Checker backed by a LanguageTool server (/v2/check).
// Calls go through a circuit breaker so a dead server fails fast instead of
// stalling every request.
type LanguageTool struct {
	endpoint string
	language string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
}

var _ Checker = (*LanguageTool)(nil)

// BreakerConfig holds the circuit breaker settings for the LanguageTool client.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the breaker settings used by NewLanguageTool.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// NewLanguageTool creates a client for the server at endpoint, e.g.
// "http://localhost:8081".
func NewLanguageTool(endpoint, language string, client *http.Client, cfg BreakerConfig, logger *zap.Logger) *LanguageTool {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if language == "" {
		language = "en-US"
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "languagetool",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return &LanguageTool{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		language: language,
		client:   client,
		breaker:  cb,
	}
}

type ltResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Rule struct {
			ID string `json:"id"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check posts text to the server and converts its matches.
func (lt *LanguageTool) Check(ctx context.Context, text string) ([]Match, error) {
	res, err := lt.breaker.Execute(func() (interface{}, error) {
		return lt.check(ctx, text)
	})
	if err != nil {
		return nil, fmt.Errorf("languagetool: %w", err)
	}
	return res.([]Match), nil
}

func (lt *LanguageTool) check(ctx context.Context, text string) ([]Match, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", lt.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lt.endpoint+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := lt.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload ltResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	offsets := utf16ToByte(text)
	out := make([]Match, 0, len(payload.Matches))
	for _, m := range payload.Matches {
		start, end := m.Offset, m.Offset+m.Length
		if start < 0 || end >= len(offsets) || start > end {
			continue
		}
		match := Match{
			Offset:  offsets[start],
			Length:  offsets[end] - offsets[start],
			Message: m.Message,
			Rule:    m.Rule.ID,
		}
		for _, r := range m.Replacements {
			match.Replacements = append(match.Replacements, r.Value)
		}
		out = append(out, match)
	}
	return out, nil
}

// utf16ToByte maps each UTF-16 code unit index of text (the unit
// LanguageTool reports offsets in) to a byte offset. The slice has one extra
// entry for the end of the text.
func utf16ToByte(text string) []int {
	out := make([]int, 0, len(text)+1)
	for i, r := range text {
		out = append(out, i)
		if r >= 0x10000 {
			out = append(out, i)
		}
	}
	return append(out, len(text))
}
