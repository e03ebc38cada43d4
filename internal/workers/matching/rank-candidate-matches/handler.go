// internal/workers/matching/rank-candidate-matches/handler.go
package rankcandidatematches

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	commonerrors "cofound-workers/internal/common/errors"
	"cofound-workers/internal/common/logger"
	"cofound-workers/internal/common/metrics"
	"cofound-workers/internal/matching"
	"cofound-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "rank-candidate-matches"
)

var (
	ErrRankingFailed = errors.New("RANKING_FAILED")
)

type Handler struct {
	config   *Config
	db       *sql.DB
	redis    *redis.Client
	logger   logger.Logger
	errorMgr *commonerrors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		db:       db,
		redis:    redis,
		logger:   scoped,
		errorMgr: commonerrors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "RANKING_FAILED").Inc()
		h.errorMgr.HandleJobError(ctx, client, job, commonerrors.NewRankingFailedError(err))
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrRankingFailed)
	}
	if input.UserID == "" && input.ViewerProfile == nil {
		return nil, fmt.Errorf("%w: userId or viewerProfile is required", ErrRankingFailed)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = h.config.DefaultLimit
	}

	cacheKey := fmt.Sprintf("%s:%s:%d", h.config.CacheKeyPrefix, input.UserID, limit)

	// An inline candidate pool means the workflow wants this exact pool
	// scored, so the cache is only consulted for stored-pool requests.
	cacheable := input.UserID != "" && input.CandidatePool == nil
	if cacheable && !input.ForceRefresh {
		if cached, err := h.getCached(ctx, cacheKey); err == nil {
			metrics.RankingCacheHits.WithLabelValues("hit").Inc()
			h.logger.Debug("serving ranked matches from cache", map[string]interface{}{
				"userId": input.UserID,
				"limit":  limit,
			})
			return cached, nil
		}
		metrics.RankingCacheHits.WithLabelValues("miss").Inc()
	}

	viewer := input.ViewerProfile
	if viewer == nil {
		var err error
		viewer, err = h.getProfile(ctx, input.UserID)
		if err != nil {
			// Viewer without a stored profile still gets ranked results;
			// scores then reduce to each candidate's completeness bonus.
			h.logger.Warn("failed to fetch viewer profile", map[string]interface{}{
				"userId": input.UserID,
				"error":  err,
			})
		}
	}

	pool := input.CandidatePool
	if pool == nil {
		var err error
		pool, err = h.loadCandidatePool(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRankingFailed, err)
		}
	}

	matches := matching.Rank(viewer, pool, limit)
	metrics.RankingPoolSize.Observe(float64(len(pool)))

	output := &Output{
		UserID:          input.UserID,
		Matches:         matches,
		TotalCandidates: len(pool),
	}

	if cacheable {
		if data, err := json.Marshal(output); err == nil {
			if err := h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL).Err(); err != nil {
				h.logger.Warn("failed to cache ranked matches", map[string]interface{}{
					"userId": input.UserID,
					"error":  err,
				})
			}
		}
	}

	h.logger.Info("candidates ranked", map[string]interface{}{
		"userId":   input.UserID,
		"poolSize": len(pool),
		"returned": len(matches),
		"limit":    limit,
	})

	return output, nil
}

func (h *Handler) getCached(ctx context.Context, key string) (*Output, error) {
	val, err := h.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var output Output
	if err := json.Unmarshal(val, &output); err != nil {
		return nil, err
	}
	output.FromCache = true
	return &output, nil
}

func (h *Handler) getProfile(ctx context.Context, userID string) (*models.Profile, error) {
	row := h.db.QueryRowContext(ctx, `
		SELECT id, full_name, COALESCE(university, ''), COALESCE(bio, ''),
		       COALESCE(skills, '[]'), COALESCE(interests, '[]'), COALESCE(role, ''),
		       COALESCE(linkedin_url, ''), COALESCE(twitter_url, ''), COALESCE(website_url, ''),
		       COALESCE(avatar_url, ''), is_onboarded
		FROM profiles WHERE id = $1`, userID)
	return scanProfile(row)
}

// loadCandidatePool returns every onboarded profile except the viewer's own.
// The ORDER BY fixes the tie-break order for equal scores downstream.
func (h *Handler) loadCandidatePool(ctx context.Context, excludeID string) ([]*models.Profile, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, full_name, COALESCE(university, ''), COALESCE(bio, ''),
		       COALESCE(skills, '[]'), COALESCE(interests, '[]'), COALESCE(role, ''),
		       COALESCE(linkedin_url, ''), COALESCE(twitter_url, ''), COALESCE(website_url, ''),
		       COALESCE(avatar_url, ''), is_onboarded
		FROM profiles
		WHERE is_onboarded = true AND id <> $1
		ORDER BY created_at DESC`, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pool := []*models.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			h.logger.Warn("skipping unreadable candidate row", map[string]interface{}{
				"error": err,
			})
			continue
		}
		pool = append(pool, profile)
	}
	return pool, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var profile models.Profile
	var skills, interests []byte
	err := row.Scan(
		&profile.ID, &profile.FullName, &profile.University, &profile.Bio,
		&skills, &interests, &profile.Role,
		&profile.LinkedinURL, &profile.TwitterURL, &profile.WebsiteURL,
		&profile.AvatarURL, &profile.IsOnboarded,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skills, &profile.Skills); err != nil {
		profile.Skills = []string{}
	}
	if err := json.Unmarshal(interests, &profile.Interests); err != nil {
		profile.Interests = []string{}
	}
	return &profile, nil
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
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
