// internal/workers/communication/send-notification/handler.go
package sendnotification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"cofound-workers/internal/common/logger"
	"cofound-workers/internal/common/metrics"
	"cofound-workers/internal/models"
	"cofound-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-notification"
)

var (
	ErrSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
)

// EmailSender delivers a rendered email. Satisfied by the SES client.
type EmailSender interface {
	SendSimpleEmail(ctx context.Context, to, subject, htmlBody string) error
}

// SMSSender delivers a rendered SMS. Satisfied by the SNS client.
type SMSSender interface {
	SendSMS(ctx context.Context, phoneNumber, message string) error
}

type Handler struct {
	config    *Config
	db        *sql.DB
	templates *registry.Registry
	email     EmailSender
	sms       SMSSender
	logger    logger.Logger
}

func NewHandler(config *Config, db *sql.DB, templates *registry.Registry, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		db:        db,
		templates: templates,
		email:     email,
		sms:       sms,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		code := "NOTIFICATION_SEND_FAILED"
		if errors.Is(err, registry.ErrTemplateNotFound) {
			code = "TEMPLATE_NOT_FOUND"
		}
		h.failJob(client, job, code, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.Type == "" {
		return nil, fmt.Errorf("%w: notification type is required", ErrSendFailed)
	}

	// Orchestrations may pass only a user id and leave contact resolution
	// to the worker.
	if input.Recipient.Email == "" && input.Recipient.Phone == "" && input.RecipientID != "" {
		recipient, err := h.lookupRecipient(ctx, input.RecipientID)
		if err != nil {
			return nil, fmt.Errorf("%w: lookup recipient %s: %v", ErrSendFailed, input.RecipientID, err)
		}
		if input.Recipient.Name == "" {
			input.Recipient.Name = recipient.Name
		}
		input.Recipient.Email = recipient.Email
		input.Recipient.Phone = recipient.Phone
	}

	if input.Recipient.Email == "" && input.Recipient.Phone == "" {
		return nil, fmt.Errorf("%w: recipient has no email or phone", ErrSendFailed)
	}

	tmpl, err := h.templates.Get(input.Type)
	if err != nil {
		return nil, err
	}

	data := make(map[string]interface{}, len(input.Data)+1)
	for key, value := range input.Data {
		data[key] = value
	}
	if _, ok := data["RecipientName"]; !ok {
		data["RecipientName"] = input.Recipient.Name
	}

	output := &Output{NotificationID: uuid.NewString()}

	if h.config.EmailEnabled && h.email != nil && input.Recipient.Email != "" {
		if err := h.sendEmail(ctx, input, tmpl, data); err != nil {
			return nil, err
		}
		output.EmailSent = true
	}

	// SMS is reserved for high priority notifications.
	if h.config.SMSEnabled && h.sms != nil && input.Priority == models.PriorityHigh && input.Recipient.Phone != "" {
		if err := h.sendSMS(ctx, input, tmpl, data); err != nil {
			// Email already went out; a failed SMS downgrades to a warning
			// rather than failing the whole notification.
			if output.EmailSent {
				h.logger.Warn("sms delivery failed", map[string]interface{}{
					"notificationId": output.NotificationID,
					"type":           input.Type,
					"error":          err,
				})
			} else {
				return nil, err
			}
		} else {
			output.SMSSent = true
		}
	}

	if !output.EmailSent && !output.SMSSent {
		return nil, fmt.Errorf("%w: no delivery channel available for type %s", ErrSendFailed, input.Type)
	}

	h.logger.Info("notification sent", map[string]interface{}{
		"notificationId": output.NotificationID,
		"type":           input.Type,
		"emailSent":      output.EmailSent,
		"smsSent":        output.SMSSent,
	})

	return output, nil
}

func (h *Handler) lookupRecipient(ctx context.Context, userID string) (Recipient, error) {
	var recipient Recipient
	if h.db == nil {
		return recipient, fmt.Errorf("no database configured for recipient lookup")
	}
	err := h.db.QueryRowContext(ctx, `
		SELECT full_name, COALESCE(email, ''), COALESCE(phone, '')
		FROM users WHERE id = $1`, userID).
		Scan(&recipient.Name, &recipient.Email, &recipient.Phone)
	return recipient, err
}

func (h *Handler) sendEmail(ctx context.Context, input *Input, tmpl registry.Template, data map[string]interface{}) error {
	subject, err := registry.Render(tmpl.Subject, data)
	if err != nil {
		return fmt.Errorf("%w: render subject: %v", ErrSendFailed, err)
	}
	body, err := registry.Render(tmpl.Email, data)
	if err != nil {
		return fmt.Errorf("%w: render email body: %v", ErrSendFailed, err)
	}
	if err := h.email.SendSimpleEmail(ctx, input.Recipient.Email, subject, body); err != nil {
		return fmt.Errorf("%w: send email: %v", ErrSendFailed, err)
	}
	return nil
}

func (h *Handler) sendSMS(ctx context.Context, input *Input, tmpl registry.Template, data map[string]interface{}) error {
	if tmpl.SMS == "" {
		return fmt.Errorf("%w: template %s has no sms body", ErrSendFailed, input.Type)
	}
	message, err := registry.Render(tmpl.SMS, data)
	if err != nil {
		return fmt.Errorf("%w: render sms body: %v", ErrSendFailed, err)
	}
	if err := h.sms.SendSMS(ctx, input.Recipient.Phone, message); err != nil {
		return fmt.Errorf("%w: send sms: %v", ErrSendFailed, err)
	}
	return nil
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
