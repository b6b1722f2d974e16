package server

import (
	"errors"
	"net/http"
	"strings"

	catalogdomain "github.com/santaradigital/backoffice/internal/catalog/domain"
	contentdomain "github.com/santaradigital/backoffice/internal/content/domain"
	"github.com/santaradigital/backoffice/internal/invoice/calc"
	invoicedomain "github.com/santaradigital/backoffice/internal/invoice/domain"
	orderdomain "github.com/santaradigital/backoffice/internal/order/domain"
	"github.com/santaradigital/backoffice/internal/providers/email"
	settingsdomain "github.com/santaradigital/backoffice/internal/settings/domain"
	"github.com/santaradigital/backoffice/pkg/db"

	"github.com/gin-gonic/gin"
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
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
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

	if cErr := asCalcError(err); cErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   cErr.Field,
					Code:    "invalid_" + cErr.Field,
					Message: cErr.Reason,
				},
			},
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
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

func asCalcError(err error) *calc.ValidationError {
	var cErr *calc.ValidationError
	if errors.As(err, &cErr) && cErr != nil {
		return cErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, catalogdomain.ErrInvalidID),
		errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidPrice),
		errors.Is(err, orderdomain.ErrInvalidID),
		errors.Is(err, orderdomain.ErrInvalidCustomerName),
		errors.Is(err, orderdomain.ErrInvalidCustomerEmail),
		errors.Is(err, orderdomain.ErrInvalidService),
		errors.Is(err, orderdomain.ErrInvalidStatus),
		errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidType),
		errors.Is(err, invoicedomain.ErrInvalidStatus),
		errors.Is(err, contentdomain.ErrInvalidID),
		errors.Is(err, contentdomain.ErrInvalidSectionName),
		errors.Is(err, contentdomain.ErrInvalidClientName),
		errors.Is(err, contentdomain.ErrInvalidRating),
		errors.Is(err, contentdomain.ErrInvalidColumnTitle),
		errors.Is(err, settingsdomain.ErrInvalidSMTPPort),
		errors.Is(err, settingsdomain.ErrInvalidTaxRate):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, orderdomain.ErrInvalidTransition),
		errors.Is(err, invoicedomain.ErrInvalidTransition),
		errors.Is(err, invoicedomain.ErrOrderNotInvoiceable),
		errors.Is(err, email.ErrDisabled),
		db.IsDuplicateKeyErr(err):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, orderdomain.ErrInvalidTransition),
		errors.Is(err, invoicedomain.ErrInvalidTransition):
		return "status transition not allowed"
	case errors.Is(err, invoicedomain.ErrOrderNotInvoiceable):
		return "order is not ready for invoicing"
	case errors.Is(err, email.ErrDisabled):
		return "email delivery is disabled"
	case db.IsDuplicateKeyErr(err):
		return "duplicate value"
	default:
		return "conflict"
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, contentdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
