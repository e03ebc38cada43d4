// internal/workers/profiles/search-profiles/handler.go
package searchprofiles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"cofound-workers/internal/common/logger"
	"cofound-workers/internal/common/metrics"
	"cofound-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
)

const (
	TaskType = "search-profiles"
)

var (
	ErrSearchFailed     = errors.New("SEARCH_QUERY_FAILED")
	ErrIndexNotFound    = errors.New("INDEX_NOT_FOUND")
	ErrSearchTimeout    = errors.New("SEARCH_TIMEOUT")
	ErrConnectionFailed = errors.New("ELASTICSEARCH_CONNECTION_FAILED")
)

type Handler struct {
	config *Config
	es     *elasticsearch.Client
	logger logger.Logger
}

func NewHandler(config *Config, es *elasticsearch.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		es:     es,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, mapErrorToCode(err), err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input is required", ErrSearchFailed)
	}

	size := input.Size
	if size <= 0 {
		size = h.config.DefaultSize
	}
	if size > h.config.MaxSize {
		size = h.config.MaxSize
	}
	from := input.From
	if from < 0 {
		from = 0
	}

	query := buildSearchQuery(input)
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(query); err != nil {
		return nil, fmt.Errorf("%w: encode query: %v", ErrSearchFailed, err)
	}

	res, err := h.es.Search(
		h.es.Search.WithContext(ctx),
		h.es.Search.WithIndex(h.config.Index),
		h.es.Search.WithBody(&body),
		h.es.Search.WithSize(size),
		h.es.Search.WithFrom(from),
		h.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrSearchTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == 404 {
			return nil, fmt.Errorf("%w: index %q", ErrIndexNotFound, h.config.Index)
		}
		return nil, fmt.Errorf("%w: status %s", ErrSearchFailed, res.Status())
	}

	output, err := parseSearchResponse(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	h.logger.Info("search completed", map[string]interface{}{
		"query":  input.Query,
		"hits":   len(output.Hits),
		"total":  output.Total,
		"tookMs": output.Took,
	})

	return output, nil
}

// buildSearchQuery assembles the bool query. Free text is matched across
// the profile text fields with the name boosted; filters narrow by exact
// keyword values. Only onboarded profiles are searchable.
func buildSearchQuery(input *Input) map[string]interface{} {
	filter := []map[string]interface{}{
		{"term": map[string]interface{}{"is_onboarded": true}},
	}
	if input.Filters.University != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"university.keyword": input.Filters.University},
		})
	}
	if input.Filters.Role != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"role.keyword": input.Filters.Role},
		})
	}
	if len(input.Filters.Skills) > 0 {
		filter = append(filter, map[string]interface{}{
			"terms": map[string]interface{}{"skills.keyword": input.Filters.Skills},
		})
	}

	boolQuery := map[string]interface{}{
		"filter": filter,
	}
	if strings.TrimSpace(input.Query) != "" {
		boolQuery["must"] = []map[string]interface{}{
			{
				"multi_match": map[string]interface{}{
					"query":  input.Query,
					"fields": []string{"full_name^2", "bio", "skills", "interests"},
				},
			},
		}
	} else {
		boolQuery["must"] = []map[string]interface{}{
			{"match_all": map[string]interface{}{}},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}
}

type searchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		MaxScore *float64 `json:"max_score"`
		Hits     []struct {
			Score  float64        `json:"_score"`
			Source models.Profile `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func parseSearchResponse(body io.Reader) (*Output, error) {
	var resp searchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, err
	}

	output := &Output{
		Hits:  make([]Hit, 0, len(resp.Hits.Hits)),
		Total: resp.Hits.Total.Value,
		Took:  resp.Took,
	}
	// max_score is null when the query has no hits.
	if resp.Hits.MaxScore != nil {
		output.MaxScore = *resp.Hits.MaxScore
	}
	for _, hit := range resp.Hits.Hits {
		output.Hits = append(output.Hits, Hit{Profile: hit.Source, Score: hit.Score})
	}
	return output, nil
}

func mapErrorToCode(err error) string {
	switch {
	case errors.Is(err, ErrIndexNotFound):
		return "INDEX_NOT_FOUND"
	case errors.Is(err, ErrSearchTimeout):
		return "SEARCH_TIMEOUT"
	case errors.Is(err, ErrConnectionFailed):
		return "ELASTICSEARCH_CONNECTION_FAILED"
	default:
		return "SEARCH_QUERY_FAILED"
	}
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
