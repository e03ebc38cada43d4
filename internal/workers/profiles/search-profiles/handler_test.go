// internal/workers/profiles/search-profiles/handler_test.go
package searchprofiles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"cofound-workers/internal/common/logger"
	"cofound-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Index:       "profiles",
		DefaultSize: 20,
		MaxSize:     100,
		Timeout:     15 * time.Second,
	}
}

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newMockES(t *testing.T, fn roundTripFunc) *elasticsearch.Client {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://localhost:9200"},
		Transport: fn,
	})
	require.NoError(t, err)
	return client
}

func esResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body: io.NopCloser(strings.NewReader(body)),
	}
}

func searchResultBody(profiles ...*models.Profile) string {
	hits := make([]map[string]interface{}, 0, len(profiles))
	for i, p := range profiles {
		hits = append(hits, map[string]interface{}{
			"_score":  float64(len(profiles) - i),
			"_source": p,
		})
	}
	hitsBody := map[string]interface{}{
		"total": map[string]interface{}{"value": len(profiles)},
		"hits":  hits,
	}
	if len(profiles) > 0 {
		hitsBody["max_score"] = float64(len(profiles))
	}
	body, _ := json.Marshal(map[string]interface{}{
		"took": 7,
		"hits": hitsBody,
	})
	return string(body)
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_ReturnsHits(t *testing.T) {
	es := newMockES(t, func(req *http.Request) (*http.Response, error) {
		assert.Contains(t, req.URL.Path, "/profiles/_search")
		return esResponse(200, searchResultBody(
			&models.Profile{ID: "user-1", FullName: "Asha Verma"},
			&models.Profile{ID: "user-2", FullName: "Dev Patel"},
		)), nil
	})

	handler := NewHandler(createTestConfig(), es, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Query: "climate"})

	assert.NoError(t, err)
	require.Len(t, output.Hits, 2)
	assert.Equal(t, "user-1", output.Hits[0].Profile.ID)
	assert.Greater(t, output.Hits[0].Score, output.Hits[1].Score)
	assert.Equal(t, 2, output.Total)
	assert.Equal(t, 2.0, output.MaxScore)
	assert.Equal(t, 7, output.Took)
}

func TestHandler_Execute_FiltersInQueryBody(t *testing.T) {
	var captured map[string]interface{}
	es := newMockES(t, func(req *http.Request) (*http.Response, error) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&captured))
		return esResponse(200, searchResultBody()), nil
	})

	handler := NewHandler(createTestConfig(), es, newTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{
		Query: "fintech",
		Filters: Filters{
			University: "MIT",
			Role:       models.RoleReadyToJoin,
			Skills:     []string{"Go"},
		},
	})
	require.NoError(t, err)

	boolQuery := captured["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})
	// is_onboarded plus the three requested filters.
	assert.Len(t, filters, 4)

	encoded, _ := json.Marshal(filters)
	assert.Contains(t, string(encoded), "is_onboarded")
	assert.Contains(t, string(encoded), "university.keyword")
	assert.Contains(t, string(encoded), "role.keyword")
	assert.Contains(t, string(encoded), "skills.keyword")
}

func TestHandler_Execute_EmptyQueryMatchesAll(t *testing.T) {
	var captured map[string]interface{}
	es := newMockES(t, func(req *http.Request) (*http.Response, error) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&captured))
		return esResponse(200, searchResultBody()), nil
	})

	handler := NewHandler(createTestConfig(), es, newTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{Query: "   "})
	require.NoError(t, err)

	encoded, _ := json.Marshal(captured)
	assert.Contains(t, string(encoded), "match_all")
	assert.NotContains(t, string(encoded), "multi_match")
}

func TestHandler_Execute_SizeClamped(t *testing.T) {
	var sizeParam string
	es := newMockES(t, func(req *http.Request) (*http.Response, error) {
		sizeParam = req.URL.Query().Get("size")
		return esResponse(200, searchResultBody()), nil
	})

	handler := NewHandler(createTestConfig(), es, newTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{Query: "go", Size: 5000})

	assert.NoError(t, err)
	assert.Equal(t, "100", sizeParam)
}

func TestHandler_Execute_IndexNotFound(t *testing.T) {
	es := newMockES(t, func(req *http.Request) (*http.Response, error) {
		return esResponse(404, `{"error":{"type":"index_not_found_exception"}}`), nil
	})

	handler := NewHandler(createTestConfig(), es, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Query: "go"})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexNotFound)
	assert.Nil(t, output)
	assert.Equal(t, "INDEX_NOT_FOUND", mapErrorToCode(err))
}

func TestHandler_Execute_ServerError(t *testing.T) {
	es := newMockES(t, func(req *http.Request) (*http.Response, error) {
		return esResponse(500, `{"error":{"type":"search_phase_execution_exception"}}`), nil
	})

	handler := NewHandler(createTestConfig(), es, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Query: "go"})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.Nil(t, output)
	assert.Equal(t, "SEARCH_QUERY_FAILED", mapErrorToCode(err))
}

func TestHandler_Execute_ConnectionFailure(t *testing.T) {
	es := newMockES(t, func(req *http.Request) (*http.Response, error) {
		return nil, fmt.Errorf("dial tcp: connection refused")
	})

	handler := NewHandler(createTestConfig(), es, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Query: "go"})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectionFailed)
	assert.Nil(t, output)
	assert.Equal(t, "ELASTICSEARCH_CONNECTION_FAILED", mapErrorToCode(err))
}
