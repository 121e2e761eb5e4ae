package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector("improver")

	c.EngineFailure("grammar", "timeout")
	c.EngineFailure("grammar", "timeout")
	c.Suggestion("redundancy")
	c.ObserveDocument(20 * time.Millisecond)
	c.ObserveStage("rewrite", time.Millisecond)
	c.ObserveHTTP("POST", "/api/v1/improve", 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.EngineFailures.WithLabelValues("grammar", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Suggestions.WithLabelValues("redundancy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Documents))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("POST", "/api/v1/improve", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.StageDuration))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector("improver")
	b := NewCollector("improver")
	a.Suggestion("entity")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Suggestions.WithLabelValues("entity")))
}

func TestHandler(t *testing.T) {
	c := NewCollector("improver")
	c.Suggestion("complex_word")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `improver_suggestions_total{source="complex_word"} 1`)
}
