// Copyright (c) 2026 Bazario. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// It ensures that every response (Success or Error) across the entire application
// follows a strict, predictable JSON envelope structure. This consistency is
// crucial for frontend SPAs to parse data robustly.
//
// # Envelopes
//
// Success:  { "message": ..., "data": ..., "success": true }
// Lists:    { "message": ..., "data": ..., "pagination": {...}, "success": true }
// Failure:  { "message": ..., "statusCode": ..., "success": false }
//
// Error is the single translation boundary from Go errors to HTTP: handlers
// never build error bodies themselves and never swallow failures into 200s.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nqhuan/bazario/internal/platform/apperr"
	"github.com/nqhuan/bazario/internal/platform/ctxutil"
	"github.com/nqhuan/bazario/pkg/pagination"
)

// SuccessEnvelope is the JSON envelope for successful single-resource responses.
type SuccessEnvelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Success bool        `json:"success"`
}

// PaginatedEnvelope is the JSON envelope for paginated list responses.
type PaginatedEnvelope struct {
	Message    string          `json:"message"`
	Data       interface{}     `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
	Success    bool            `json:"success"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Message    string              `json:"message"`
	StatusCode int                 `json:"statusCode"`
	Success    bool                `json:"success"`
	Details    []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, message string, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Message: message, Data: data, Success: true})
}

// Paginated writes a 200 OK response with paginated data and a metadata block.
func Paginated(writer http.ResponseWriter, message string, data interface{}, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{
		Message:    message,
		Data:       data,
		Pagination: metadata,
		Success:    true,
	})
}

// Error converts any Go error into the standardized JSON API error response.
//
// # Behavior
//
// Domain errors ([apperr.AppError]) carry their own status code and
// client-safe message. Anything else is logged with full detail and returned
// to the client as an opaque 500 — stack traces and storage internals never
// leave the server.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "unhandled_error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Message:    appError.Message,
		StatusCode: appError.HTTPStatus,
		Success:    false,
		Details:    appError.Details,
	})
}
