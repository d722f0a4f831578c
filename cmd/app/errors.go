package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sushihentaime/blogcrud/internal/common"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		url    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), slog.String("method", method), slog.String("url", url))
}

// writeErrorResponse writes the envelope for a failed request. The raw error is only
// exposed outside production-like environments.
func (app *application) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string, data any, cause error) {
	env := envelope{
		"status_code": status,
		"message":     message,
	}
	if data != nil {
		env["data"] = data
	}
	if cause != nil && app.config.Environment == "development" {
		env["error"] = cause.Error()
	}

	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse reports an unexpected error. Errors that declare their own status keep it.
func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	var statusErr *common.StatusError
	if errors.As(err, &statusErr) {
		app.writeErrorResponse(w, r, statusErr.Status, statusErr.Message, nil, err)
		return
	}

	message := "the server encountered a problem and could not process your request"
	app.writeErrorResponse(w, r, http.StatusInternalServerError, message, nil, err)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, err.Error(), nil, nil)
}

func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, "missing or invalid fields", errors, nil)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusNotFound, "resource not found", nil, nil)
}

func (app *application) recordNotFoundResponse(w http.ResponseWriter, r *http.Request, resource string) {
	app.writeErrorResponse(w, r, http.StatusNotFound, resource+" not found", nil, nil)
}

func (app *application) unauthorizedResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "unauthorized access", nil, nil)
}

func (app *application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "invalid authentication credentials", nil, nil)
}

func (app *application) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "invalid or missing authentication token", nil, nil)
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed", nil, nil)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded", nil, nil)
}

// errorResponse maps service errors onto responses. resource names the record in not found messages.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error, resource string) {
	var validationErr common.ValidationError

	switch {
	case errors.Is(err, common.ErrRecordNotFound):
		app.recordNotFoundResponse(w, r, resource)
	case errors.Is(err, common.ErrUnauthorized):
		app.unauthorizedResponse(w, r)
	case errors.As(err, &validationErr):
		app.failedValidationResponse(w, r, validationErr.Errors)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
