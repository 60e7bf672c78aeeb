package api

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/go-streamline/aiworkflow/models"
	"github.com/go-streamline/aiworkflow/repository"
	"github.com/sirupsen/logrus"
)

const (
	CodeNotFound              = "NOT_FOUND"
	CodeModelProviderNotFound = "MODEL_PROVIDER_NOT_FOUND"
	CodeModelNotFound         = "MODEL_NOT_FOUND"
	CodeValidation            = "VALIDATION_ERROR"
	CodeForbidden             = "FORBIDDEN"
	CodeConflict              = "CONFLICT"
	CodeInternal              = "INTERNAL_SERVER_ERROR"
)

// APIError is rendered as {error_code, message} with its status.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

func newNotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

func newModelProviderNotFound() *APIError {
	return &APIError{Status: http.StatusNotFound, Code: CodeModelProviderNotFound, Message: "Model provider not found"}
}

func newModelNotFound() *APIError {
	return &APIError{Status: http.StatusNotFound, Code: CodeModelNotFound, Message: "Model not found"}
}

func newValidationError(err error) *APIError {
	return &APIError{Status: http.StatusUnprocessableEntity, Code: CodeValidation, Message: err.Error()}
}

func newForbidden(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

const (
	msgDefinitionNotFound = "AI Workflow Definition not found"
	msgJobNotFound        = "AI Workflow Job not found"
)

// fail renders err. Unknown errors are logged, reported to Sentry and
// rendered as a 500 without their detail.
func (h *Handler) fail(c *gin.Context, err error) {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, repository.ErrWorkflowDefinitionNotFound):
		apiErr = newNotFound(msgDefinitionNotFound)
	case errors.Is(err, repository.ErrModelProviderNotFound):
		apiErr = newModelProviderNotFound()
	case errors.Is(err, repository.ErrNotFound):
		apiErr = newNotFound("Resource not found")
	case errors.Is(err, models.ErrInvalidField):
		apiErr = newValidationError(err)
	case errors.Is(err, repository.ErrConflict):
		apiErr = &APIError{Status: http.StatusConflict, Code: CodeConflict, Message: "Resource conflict"}
	default:
		h.log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
		apiErr = &APIError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "Internal server error"}
	}

	if apiErr.Status < http.StatusInternalServerError {
		h.log.WithFields(logrus.Fields{
			"error_code": apiErr.Code,
			"path":       c.Request.URL.Path,
		}).Info(apiErr.Message)
	}
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}
