// internal/workers/matching/calculate-match-score/handler.go
package calculatematchscore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"cofound-workers/internal/common/logger"
	"cofound-workers/internal/common/metrics"
	"cofound-workers/internal/matching"
	"cofound-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "calculate-match-score"
)

var (
	ErrMatchScoreFailed = errors.New("MATCH_SCORE_FAILED")
	ErrProfileNotFound  = errors.New("PROFILE_NOT_FOUND")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
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
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "MATCH_SCORE_FAILED"
		if errors.Is(err, ErrProfileNotFound) {
			errorCode = "PROFILE_NOT_FOUND"
		}
		h.failJob(client, job, errorCode, err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrMatchScoreFailed)
	}
	if input.CandidateProfile == nil && input.CandidateID == "" {
		return nil, fmt.Errorf("%w: candidateId or candidateProfile is required", ErrMatchScoreFailed)
	}

	viewer := input.ViewerProfile
	if viewer == nil && input.ViewerID != "" {
		var err error
		viewer, err = h.getProfile(ctx, input.ViewerID)
		if err != nil {
			// A viewer with no stored profile still gets a score; every
			// pairwise criterion just stays at zero.
			h.logger.Warn("failed to fetch viewer profile", map[string]interface{}{
				"viewerId": input.ViewerID,
				"error":    err,
			})
		}
	}

	candidate := input.CandidateProfile
	if candidate == nil {
		var err error
		candidate, err = h.getProfile(ctx, input.CandidateID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, input.CandidateID)
		}
	}

	score := matching.MatchScore(viewer, candidate)
	metrics.MatchScoresComputed.Inc()

	h.logger.Info("match score calculated", map[string]interface{}{
		"viewerId":    input.ViewerID,
		"candidateId": score.CandidateID,
		"score":       score.Score,
		"breakdown":   score.Breakdown,
	})

	return &Output{
		CandidateID:         score.CandidateID,
		MatchScore:          score.Score,
		Breakdown:           score.Breakdown,
		SharedInterests:     score.SharedInterests,
		ComplementarySkills: score.ComplementarySkills,
		ProfileCompleteness: score.Completeness,
	}, nil
}

func (h *Handler) getProfile(ctx context.Context, userID string) (*models.Profile, error) {
	cacheKey := "profile:" + userID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var profile models.Profile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT id, full_name, COALESCE(university, ''), COALESCE(bio, ''),
		       COALESCE(skills, '[]'), COALESCE(interests, '[]'), COALESCE(role, ''),
		       COALESCE(linkedin_url, ''), COALESCE(twitter_url, ''), COALESCE(website_url, ''),
		       COALESCE(avatar_url, ''), is_onboarded
		FROM profiles WHERE id = $1`, userID)

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

	data, _ := json.Marshal(profile)
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, _ int32) {
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
