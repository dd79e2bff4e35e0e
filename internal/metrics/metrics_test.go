package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRebuild(t *testing.T) {
	before := testutil.ToFloat64(FeatureRebuildsTotal)

	RecordRebuild(2*time.Millisecond, 11, 42)

	assert.Equal(t, before+1, testutil.ToFloat64(FeatureRebuildsTotal))
	assert.Equal(t, 11.0, testutil.ToFloat64(CatalogProducts))
	assert.Equal(t, 42.0, testutil.ToFloat64(FeatureColumns))
}

func TestRecordRecommendation(t *testing.T) {
	found := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(OutcomeFound))
	empty := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(OutcomeEmpty))
	hits := testutil.ToFloat64(RecommendationCacheHits)

	RecordRecommendation(OutcomeFound, false)
	RecordRecommendation(OutcomeFound, true)
	RecordRecommendation(OutcomeEmpty, false)

	assert.Equal(t, found+2, testutil.ToFloat64(RecommendationsTotal.WithLabelValues(OutcomeFound)))
	assert.Equal(t, empty+1, testutil.ToFloat64(RecommendationsTotal.WithLabelValues(OutcomeEmpty)))
	assert.Equal(t, hits+1, testutil.ToFloat64(RecommendationCacheHits))
}

func TestRecordHTTPRequest(t *testing.T) {
	RecordHTTPRequest("GET", "/health", 200, time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration, "skinmatch_http_request_duration_seconds"))
}
