// internal/workers/lead/notify-hot-lead/handler.go
package notifyhotlead

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rfq-lead-workers/internal/common/camunda"
	"rfq-lead-workers/internal/common/errors"
	"rfq-lead-workers/internal/common/logger"
	"rfq-lead-workers/internal/common/metrics"
	"rfq-lead-workers/internal/common/observability"
	"rfq-lead-workers/internal/leadscoring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "notify-hot-lead"
)

// EmailSender is implemented by aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (string, error)
}

// SMSSender is implemented by aws.SNSClient.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type Handler struct {
	config   *Config
	email    EmailSender
	sms      SMSSender
	reporter *camunda.JobReporter
	logger   logger.Logger
	now      func() time.Time
}

// NewHandler accepts nil senders for disabled channels.
func NewHandler(config *Config, email EmailSender, sms SMSSender, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		email:    email,
		sms:      sms,
		reporter: camunda.NewJobReporter(TaskType, config.MaxRetries, obs, log),
		logger:   log,
		now:      time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	started := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.reporter.Fail(ctx, client, job, started, errors.NewInvalidRFQPayloadError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.reporter.Fail(ctx, client, job, started, err)
		return
	}

	h.reporter.Complete(ctx, client, job, started, output)
}

// Execute alerts the sales desk about a HOT lead. Delivery problems are
// reported in the output and never fail the job.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input.SessionID == "" {
		return nil, errors.NewInvalidRFQPayloadError("session_id is required")
	}

	output := &Output{NotificationID: uuid.New().String()}

	if input.LeadScore.LeadScore != leadscoring.TierHot {
		output.Status = StatusSkipped
		return output, nil
	}
	if !h.emailActive() && !h.smsActive(input) {
		output.Status = StatusDisabled
		h.logger.Warn("hot lead not notified, no channel enabled", map[string]interface{}{
			"sessionId": input.SessionID,
		})
		return output, nil
	}

	if h.emailActive() {
		output.Channels = append(output.Channels, h.sendEmail(ctx, input))
	}
	if h.smsActive(input) {
		output.Channels = append(output.Channels, h.sendSMS(ctx, input))
	}

	output.Status = StatusSent
	for _, ch := range output.Channels {
		metrics.LeadNotifications.WithLabelValues(ch.Channel, ch.Status).Inc()
		if ch.Status == StatusFailed {
			output.Status = StatusFailed
		}
	}
	if output.Status == StatusSent {
		sentAt := h.now().UTC()
		output.SentAt = &sentAt
	}

	h.logger.Info("hot lead notification processed", map[string]interface{}{
		"sessionId":      input.SessionID,
		"notificationId": output.NotificationID,
		"status":         output.Status,
	})
	return output, nil
}

func (h *Handler) emailActive() bool {
	return h.config.EmailEnabled && h.email != nil && h.config.SalesDeskEmail != ""
}

func (h *Handler) smsActive(input *Input) bool {
	return h.config.SMSEnabled && h.sms != nil && h.config.SalesDeskPhone != "" &&
		input.Urgency == leadscoring.UrgencyImmediate
}

func (h *Handler) sendEmail(ctx context.Context, input *Input) ChannelResult {
	body, err := render(emailTemplate, input)
	if err != nil {
		return h.channelFailed(ChannelEmail, input, err)
	}
	id, err := h.email.SendEmail(ctx, h.config.SalesDeskEmail, emailSubject(input), body)
	if err != nil {
		return h.channelFailed(ChannelEmail, input, err)
	}
	return ChannelResult{Channel: ChannelEmail, Status: StatusSent, MessageID: id}
}

func (h *Handler) sendSMS(ctx context.Context, input *Input) ChannelResult {
	msg, err := render(smsTemplate, input)
	if err != nil {
		return h.channelFailed(ChannelSMS, input, err)
	}
	id, err := h.sms.SendSMS(ctx, h.config.SalesDeskPhone, msg)
	if err != nil {
		return h.channelFailed(ChannelSMS, input, err)
	}
	return ChannelResult{Channel: ChannelSMS, Status: StatusSent, MessageID: id}
}

func (h *Handler) channelFailed(channel string, input *Input, err error) ChannelResult {
	stdErr := errors.NewLeadNotificationFailedError(channel, err)
	h.logger.Error(stdErr.Message, map[string]interface{}{
		"sessionId": input.SessionID,
		"errorCode": stdErr.Code,
		"error":     stdErr.Details,
	})
	return ChannelResult{Channel: channel, Status: StatusFailed, Error: stdErr.Details}
}
