// Package relay forwards completed registration records to the configured
// webhook. The relay is fire-once: a failed delivery surfaces to the caller
// and the patient resubmits, so there is no retry queue to drain.
package relay

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"

	"patient-intake/internal/patient"
	"patient-intake/pkg/apperrors"
)

var tracer = otel.Tracer("patient-intake/relay")

const statusSuccess = "success"

// Submitter delivers a validated record to its destination.
type Submitter interface {
	Submit(ctx context.Context, record patient.Record) error
}

// webhookResponse is the receiver's acknowledgment envelope.
type webhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// WebhookClient posts records as JSON to a single webhook URL.
type WebhookClient struct {
	http *resty.Client
	url  string
}

// Options configures a WebhookClient.
type Options struct {
	WebhookURL string
	Timeout    time.Duration
}

// NewWebhookClient creates a webhook submitter. An empty WebhookURL is
// allowed at construction; Submit reports it as a configuration error so the
// service can still boot and serve lookups.
func NewWebhookClient(opts Options) *WebhookClient {
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &WebhookClient{
		http: client,
		url:  opts.WebhookURL,
	}
}

// Submit posts the record and treats anything but an explicit success
// acknowledgment as a failed delivery.
func (c *WebhookClient) Submit(ctx context.Context, record patient.Record) error {
	ctx, span := tracer.Start(ctx, "relay.submit")
	defer span.End()

	if c.url == "" {
		return apperrors.New(apperrors.CodeConfig, "webhook URL is not configured")
	}

	var ack webhookResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(record).
		SetResult(&ack).
		SetError(&ack).
		Post(c.url)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeUnavailable, "webhook delivery failed")
	}
	if resp.IsError() {
		return apperrors.New(apperrors.CodeUnavailable, "webhook rejected submission")
	}
	if ack.Status != statusSuccess {
		return apperrors.New(apperrors.CodeUnavailable, "webhook did not acknowledge submission")
	}
	return nil
}
