// Package errors provides application-level error types and utilities.
// Every error surfaced by a use case is an *AppError carrying a type (which maps to an
// HTTP status) and an optional machine-readable reason.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "validation_error"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeConflict        ErrorType = "conflict"
	ErrorTypeUnauthorized    ErrorType = "unauthorized"
	ErrorTypeForbidden       ErrorType = "forbidden"
	ErrorTypeState           ErrorType = "state_error"
	ErrorTypeExternalService ErrorType = "external_service_error"
	ErrorTypeInternal        ErrorType = "internal_error"
	ErrorTypeBadRequest      ErrorType = "bad_request"
)

// Reasons narrow an ErrorType down to the concrete rule that was violated.
const (
	ReasonDuplicateName           = "duplicate_name"
	ReasonDuplicateMembership     = "duplicate_membership"
	ReasonSlotCollision           = "slot_collision"
	ReasonTermsNotAccepted        = "terms_not_accepted"
	ReasonAlreadyResponded        = "already_responded"
	ReasonInsufficientBalance     = "insufficient_balance"
	ReasonNoConfirmedContributors = "no_confirmed_contributors"
	ReasonPackageNotPublic        = "package_not_public"
	ReasonPaymentNotSuccessful    = "payment_not_successful"
	ReasonUnknownContributor      = "unknown_contributor"
	ReasonBankVerificationFailed  = "bank_verification_failed"
	ReasonTransferFailed          = "transfer_failed"
	ReasonGatewayUnavailable      = "gateway_unavailable"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Reason  string    `json:"reason,omitempty"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// WithReason returns the error tagged with a machine-readable reason.
func (e *AppError) WithReason(reason string) *AppError {
	e.Reason = reason
	return e
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewForbiddenError creates a new forbidden error. It is the authorization error of the
// taxonomy: the principal is known but may not perform the action.
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

// NewStateError creates an error for an operation that is well-formed but not allowed in
// the current state of the resource.
func NewStateError(reason, message string, details ...string) *AppError {
	return newAppError(ErrorTypeState, http.StatusUnprocessableEntity, message, details).WithReason(reason)
}

// NewExternalServiceError wraps a failed upstream call. The upstream status and body are
// kept in Details for operator diagnosis.
func NewExternalServiceError(reason, message string, upstreamStatus int, upstreamBody string) *AppError {
	detail := fmt.Sprintf("upstream status %d", upstreamStatus)
	if upstreamBody != "" {
		detail = fmt.Sprintf("%s: %s", detail, upstreamBody)
	}
	return newAppError(ErrorTypeExternalService, http.StatusBadGateway, message, []string{detail}).WithReason(reason)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool { return isType(err, ErrorTypeConflict) }

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool { return isType(err, ErrorTypeNotFound) }

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool { return isType(err, ErrorTypeValidation) }

// IsForbiddenError checks if the error is an authorization error
func IsForbiddenError(err error) bool { return isType(err, ErrorTypeForbidden) }

// IsStateError checks if the error is a state error
func IsStateError(err error) bool { return isType(err, ErrorTypeState) }

// IsExternalServiceError checks if the error came from a failed upstream call
func IsExternalServiceError(err error) bool { return isType(err, ErrorTypeExternalService) }

// HasReason reports whether err is an AppError tagged with reason.
func HasReason(err error, reason string) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Reason == reason
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// PostgreSQL unique violation
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "violates unique constraint") {
		return true
	}
	// SQLite
	if strings.Contains(errStr, "UNIQUE constraint failed") {
		return true
	}
	return false
}
