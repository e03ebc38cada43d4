// internal/workers/profiles/validate-profile-data/handler.go
package validateprofiledata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"cofound-workers/internal/common/logger"
	"cofound-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "validate-profile-data"
)

var (
	ErrValidationFailed = errors.New("PROFILE_VALIDATION_FAILED")
)

type Handler struct {
	config *Config
	schema *gojsonschema.Schema
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(profileSchema))
	if err != nil {
		return nil, fmt.Errorf("%w: compile schema: %v", ErrValidationFailed, err)
	}
	return &Handler{
		config: config,
		schema: schema,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}, nil
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
		h.failJob(client, job, "PROFILE_VALIDATION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

// execute validates the profile against the schema. A profile that fails
// validation is still a successful job: the workflow branches on the
// valid flag rather than on a thrown error.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil || input.Profile == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrValidationFailed)
	}

	doc, err := profileDocument(input.Profile)
	if err != nil {
		return nil, fmt.Errorf("%w: encode profile: %v", ErrValidationFailed, err)
	}

	result, err := h.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	output := &Output{
		Valid:  result.Valid(),
		Errors: []string{},
	}
	for _, desc := range result.Errors() {
		output.Errors = append(output.Errors, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	sort.Strings(output.Errors)

	if !output.Valid {
		h.logger.Info("profile failed validation", map[string]interface{}{
			"profileId": input.Profile.ID,
			"errors":    len(output.Errors),
		})
	}

	return output, nil
}

// profileDocument flattens the profile into a map and drops empty
// optional strings. An empty field counts as absent, so a blank
// linkedinUrl does not trip the uri format check and a blank fullName
// is reported as missing rather than malformed.
func profileDocument(profile interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	for key, value := range doc {
		if s, ok := value.(string); ok && s == "" {
			delete(doc, key)
		}
		if value == nil {
			delete(doc, key)
		}
	}
	return doc, nil
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
