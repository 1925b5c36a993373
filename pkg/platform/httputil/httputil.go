// Package httputil centralizes JSON encoding and error translation for HTTP
// handlers so every endpoint emits the same envelope.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"patient-intake/pkg/apperrors"
)

// Validatable is implemented by request types that validate and normalize
// themselves after decoding.
type Validatable interface {
	Validate() error
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into the shared error envelope. Internal and
// configuration errors omit the description so infrastructure details never
// leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	resp := ErrorResponse{Error: string(code)}

	if code != apperrors.CodeInternal && code != apperrors.CodeConfig {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			resp.ErrorDescription = appErr.Message
		}
	}

	WriteJSON(w, apperrors.ToHTTPStatus(code), resp)
}

// DecodeAndPrepare decodes the request body into T, trims string fields, and
// runs the request's own validation. On failure it writes the error response
// and returns ok=false; handlers just return.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (PT, bool) {
	req := PT(new(T))

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.WarnContext(ctx, "request decode failed",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, apperrors.New(apperrors.CodeBadRequest, "invalid JSON body"))
		return nil, false
	}

	Sanitize(req)

	if err := req.Validate(); err != nil {
		WriteError(w, err)
		return nil, false
	}

	return req, true
}

// Sanitize trims whitespace from all settable string and []string fields of a
// struct pointer. Non-struct values are ignored.
func Sanitize(v any) {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return
	}

	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanSet() {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(strings.TrimSpace(field.String()))
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					elem := field.Index(j)
					elem.SetString(strings.TrimSpace(elem.String()))
				}
			}
		}
	}
}
