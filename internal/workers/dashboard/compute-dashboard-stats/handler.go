// internal/workers/dashboard/compute-dashboard-stats/handler.go
package computedashboardstats

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
)

const (
	TaskType = "compute-dashboard-stats"
)

var (
	ErrStatsComputeFailed = errors.New("STATS_COMPUTE_FAILED")
)

type Handler struct {
	config   *Config
	db       *sql.DB
	logger   logger.Logger
	errorMgr *commonerrors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		db:       db,
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "STATS_COMPUTE_FAILED").Inc()
		h.errorMgr.HandleJobError(ctx, client, job, commonerrors.NewStatsComputeFailedError(err))
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrStatsComputeFailed)
	}

	profile := input.Profile
	if profile == nil {
		var err error
		profile, err = h.getProfile(ctx, input.UserID)
		if err != nil {
			// A user without a stored profile still gets counts; their
			// completeness is simply zero.
			h.logger.Warn("failed to fetch profile for dashboard", map[string]interface{}{
				"userId": input.UserID,
				"error":  err,
			})
		}
	}

	candidates, err := h.countCandidates(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: count candidates: %v", ErrStatsComputeFailed, err)
	}

	goals, err := h.countActiveGoals(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: count goals: %v", ErrStatsComputeFailed, err)
	}

	connections, err := h.countAcceptedConnections(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: count connections: %v", ErrStatsComputeFailed, err)
	}

	output := &Output{
		ProfileCompleteness: matching.Completeness(profile),
		CandidateCount:      candidates,
		ActiveGoals:         goals,
		AcceptedConnections: connections,
	}

	h.logger.Info("dashboard stats computed", map[string]interface{}{
		"userId":       input.UserID,
		"completeness": output.ProfileCompleteness,
		"candidates":   output.CandidateCount,
	})

	return output, nil
}

func (h *Handler) getProfile(ctx context.Context, userID string) (*models.Profile, error) {
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
	return &profile, nil
}

func (h *Handler) countCandidates(ctx context.Context, userID string) (int, error) {
	var count int
	err := h.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM profiles
		WHERE is_onboarded = true AND id <> $1`, userID).Scan(&count)
	return count, err
}

func (h *Handler) countActiveGoals(ctx context.Context, userID string) (int, error) {
	var count int
	err := h.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM goals
		WHERE user_id = $1 AND status = 'active'`, userID).Scan(&count)
	return count, err
}

func (h *Handler) countAcceptedConnections(ctx context.Context, userID string) (int, error) {
	var count int
	err := h.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM connections
		WHERE (requester_id = $1 OR recipient_id = $1) AND status = 'accepted'`, userID).Scan(&count)
	return count, err
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
