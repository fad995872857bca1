package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/smartpemda/sitagih/internal/audit/domain"
	claimdomain "github.com/smartpemda/sitagih/internal/claim/domain"
	"github.com/smartpemda/sitagih/internal/numbering"
	notificationservice "github.com/smartpemda/sitagih/internal/notification/service"
	taxdomain "github.com/smartpemda/sitagih/internal/tax/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInternal       = errors.New("internal_error")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, claimdomain.ErrInvalidActor):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, claimdomain.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(err),
					Code:    validationErrorCode(err),
					Message: firstLine(err.Error()),
				},
			},
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, claimdomain.ErrNotFound),
		errors.Is(err, notificationservice.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

// Conflicts are guard violations against current state: the request was well
// formed, the claim just is not where the caller thinks it is.
func isConflictError(err error) bool {
	switch {
	case errors.Is(err, claimdomain.ErrInvalidStatus),
		errors.Is(err, claimdomain.ErrClaimLocked),
		errors.Is(err, claimdomain.ErrVersionConflict),
		errors.Is(err, taxdomain.ErrNotDisbursed):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, claimdomain.ErrClaimLocked):
		return "claim is locked by another reviewer"
	case errors.Is(err, claimdomain.ErrVersionConflict):
		return "claim was modified concurrently, reload and retry"
	default:
		return firstLine(err.Error())
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, claimdomain.ErrMissingField),
		errors.Is(err, claimdomain.ErrInvalidAmount),
		errors.Is(err, claimdomain.ErrInvalidReason),
		errors.Is(err, claimdomain.ErrSpmIncomplete),
		errors.Is(err, claimdomain.ErrChecklistIncomplete),
		errors.Is(err, claimdomain.ErrChecklistAllSatisfied),
		errors.Is(err, taxdomain.ErrNoEntries),
		errors.Is(err, taxdomain.ErrEmptyType),
		errors.Is(err, taxdomain.ErrInvalidAmount),
		errors.Is(err, auditdomain.ErrInvalidAction),
		errors.Is(err, auditdomain.ErrInvalidPageToken),
		errors.Is(err, auditdomain.ErrInvalidTimeRange),
		errors.Is(err, numbering.ErrUnparsable):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, claimdomain.ErrMissingField):
		return "missing_field"
	case errors.Is(err, claimdomain.ErrInvalidAmount), errors.Is(err, taxdomain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, claimdomain.ErrInvalidReason):
		return "invalid_reason"
	case errors.Is(err, claimdomain.ErrChecklistIncomplete):
		return "checklist_incomplete"
	case errors.Is(err, claimdomain.ErrChecklistAllSatisfied):
		return "checklist_all_satisfied"
	case errors.Is(err, taxdomain.ErrNoEntries):
		return "no_entries"
	case errors.Is(err, taxdomain.ErrEmptyType):
		return "empty_tax_type"
	default:
		return "invalid_request"
	}
}

func validationErrorField(err error) string {
	code := validationErrorCode(err)
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if code == "missing_field" {
		return "request"
	}
	return ""
}

func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return message[:idx]
	}
	return message
}

// classifyErrorForLog labels request-log entries without leaking internals.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= 500:
		return "internal", payload.Type
	case status == http.StatusConflict:
		return "conflict", payload.Type
	case status >= 400:
		return "client", payload.Type
	default:
		return "", ""
	}
}
