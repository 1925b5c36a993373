// Package registration orchestrates a form submission: validate the draft,
// relay the normalized record to the automation webhook, and hand back a
// receipt. Nothing is persisted; a submission either reaches the webhook or
// comes back to the patient as an error.
package registration

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"patient-intake/internal/patient"
	"patient-intake/internal/patient/validate"
	"patient-intake/internal/registration/metrics"
	"patient-intake/internal/relay"
	"patient-intake/pkg/apperrors"
	"patient-intake/pkg/requestcontext"
)

// Receipt acknowledges a delivered submission.
type Receipt struct {
	SubmissionID string    `json:"submissionId"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// Result is the outcome of a registration attempt. Exactly one of Receipt and
// FieldErrors is set: field errors are data for the form, not Go errors.
type Result struct {
	Receipt     *Receipt
	FieldErrors validate.Errors
}

// Service validates drafts and relays accepted records.
type Service struct {
	relay   relay.Submitter
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewService creates a registration service. metrics may be nil in tests.
func NewService(submitter relay.Submitter, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		relay:   submitter,
		logger:  logger,
		metrics: m,
	}
}

// Register validates the draft and, when clean, delivers the normalized
// record. Validation failures come back inside the Result; only relay and
// configuration trouble is a Go error.
func (s *Service) Register(ctx context.Context, draft patient.Draft) (Result, error) {
	requestID := requestcontext.RequestID(ctx)

	record, fieldErrs := validate.Draft(draft)
	if len(fieldErrs) > 0 {
		for _, fe := range fieldErrs {
			s.metrics.IncrementValidationFailure(pathRoot(fe.Path))
		}
		s.metrics.IncrementSubmission("invalid")
		s.logger.InfoContext(ctx, "submission rejected by validation",
			"request_id", requestID,
			"error_count", len(fieldErrs),
		)
		return Result{FieldErrors: fieldErrs}, nil
	}

	start := time.Now()
	err := s.relay.Submit(ctx, record)
	s.metrics.ObserveRelayLatency(time.Since(start))
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeConfig) {
			s.metrics.IncrementSubmission("config_error")
		} else {
			s.metrics.IncrementSubmission("relay_failed")
		}
		s.logger.ErrorContext(ctx, "submission relay failed",
			"request_id", requestID,
			"error", err,
		)
		return Result{}, err
	}

	receipt := &Receipt{
		SubmissionID: uuid.NewString(),
		SubmittedAt:  requestcontext.Now(ctx).UTC(),
	}
	s.metrics.IncrementSubmission("accepted")
	s.logger.InfoContext(ctx, "submission delivered",
		"request_id", requestID,
		"submission_id", receipt.SubmissionID,
	)
	return Result{Receipt: receipt}, nil
}

// pathRoot reduces a field path like "phoneNumbers[2].number" to its root
// collection or field name for metric labels.
func pathRoot(path string) string {
	if i := strings.IndexAny(path, "[."); i >= 0 {
		return path[:i]
	}
	return path
}
