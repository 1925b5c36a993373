// Package handler exposes the form-facing HTTP surface: patient submission
// and the city/street autocomplete endpoints behind it.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"patient-intake/internal/patient"
	"patient-intake/internal/patient/validate"
	"patient-intake/internal/registration"
	"patient-intake/pkg/apperrors"
	"patient-intake/pkg/platform/httputil"
	"patient-intake/pkg/requestcontext"
)

// Registrar processes a validated form submission.
type Registrar interface {
	Register(ctx context.Context, draft patient.Draft) (registration.Result, error)
}

// Handler handles registration endpoints.
type Handler struct {
	logger    *slog.Logger
	registrar Registrar
}

// New creates a registration Handler.
func New(registrar Registrar, logger *slog.Logger) *Handler {
	return &Handler{
		logger:    logger,
		registrar: registrar,
	}
}

// Register mounts the registration routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/patients", h.handleSubmit)
	r.Get("/api/patients/draft", h.handleDraft)
}

// registerRequest is the decoded submission body. Field-level validation is
// the service's job and comes back as data, so Validate only guards the
// decode path.
type registerRequest struct {
	patient.Draft
}

func (r *registerRequest) Validate() error { return nil }

// validationResponse carries the complete field-error set for one draft.
type validationResponse struct {
	Error       string                `json:"error"`
	FieldErrors []validate.FieldError `json:"fieldErrors"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[registerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.registrar.Register(ctx, req.Draft)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if len(result.FieldErrors) > 0 {
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Error:       string(apperrors.CodeValidation),
			FieldErrors: result.FieldErrors,
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result.Receipt)
}

// handleDraft serves the empty form structure a new session starts from.
func (h *Handler) handleDraft(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, patient.DefaultDraft())
}
