// Package errors provides standardized error handling for the flow engine
// and its external-service integrations.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Flow engine errors
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeOutputSchemaMismatch ErrorCode = "OUTPUT_SCHEMA_MISMATCH"
	ErrCodeGenerationFailed     ErrorCode = "GENERATION_FAILED"
	ErrCodeTemplateRenderFailed ErrorCode = "TEMPLATE_RENDER_FAILED"
	ErrCodeOperationNotFound    ErrorCode = "OPERATION_NOT_FOUND"

	// Persistence errors
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeClientNotFound           ErrorCode = "CLIENT_NOT_FOUND"
	ErrCodeDuplicateClient          ErrorCode = "DUPLICATE_CLIENT"

	// Integration errors
	ErrCodeCRMAPIError       ErrorCode = "CRM_API_ERROR"
	ErrCodeCRMNotConfigured  ErrorCode = "CRM_NOT_CONFIGURED"
	ErrCodeMailSendFailed    ErrorCode = "MAIL_SEND_FAILED"
	ErrCodeEmailSendFailed   ErrorCode = "EMAIL_SEND_FAILED"
	ErrCodePaymentBadPayload ErrorCode = "PAYMENT_BAD_PAYLOAD"
	ErrCodePaymentBadSig     ErrorCode = "PAYMENT_SIGNATURE_INVALID"
	ErrCodeUnknownProduct    ErrorCode = "UNKNOWN_PRODUCT"

	// Activation errors
	ErrCodeTokenNotFound     ErrorCode = "TOKEN_NOT_FOUND"
	ErrCodeTokenExpired      ErrorCode = "TOKEN_EXPIRED"
	ErrCodeDuplicateIdentity ErrorCode = "DUPLICATE_IDENTITY"
	ErrCodeIdentityFailed    ErrorCode = "IDENTITY_PROVIDER_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError reports an input or output object that fails its
// declared schema. Never retryable.
func NewValidationError(field, rule string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   fmt.Sprintf("field %q violates rule: %s", field, rule),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field, "rule": rule},
		Timestamp: time.Now().UTC(),
	}
}

// NewOutputSchemaMismatchError reports a backend response that does not
// conform to the operation's declared output shape. The invocation fails
// as a whole; partial results are never surfaced.
func NewOutputSchemaMismatchError(operation string, violations []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOutputSchemaMismatch,
		Message:   fmt.Sprintf("operation %q returned non-conformant output", operation),
		Details:   fmt.Sprintf("%v", violations),
		Retryable: false,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationFailedError reports an AI backend call that produced no
// usable output.
func NewGenerationFailedError(operation string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Message:   fmt.Sprintf("generation failed for operation %q", operation),
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateRenderError reports a missing required interpolation field.
// This indicates a programming-contract violation, not a user error.
func NewTemplateRenderError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateRenderFailed,
		Message:   fmt.Sprintf("required template field %q missing from validated input", field),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewOperationNotFoundError reports an unknown operation name.
func NewOperationNotFoundError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOperationNotFound,
		Message:   fmt.Sprintf("unknown operation %q", operation),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseError wraps a persistence failure. Retryable.
func NewDatabaseError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   fmt.Sprintf("database operation %q failed", op),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewClientNotFoundError reports a missing client record.
func NewClientNotFoundError(ref string) *StandardError {
	return &StandardError{
		Code:      ErrCodeClientNotFound,
		Message:   "client record not found",
		Details:   ref,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCRMAPIError wraps a CRM workflow-enrollment failure. Retryable, though
// callers currently log and continue.
func NewCRMAPIError(workflowID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCRMAPIError,
		Message:   fmt.Sprintf("failed to enroll contact into workflow %q", workflowID),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMailSendError wraps a certified-mail submission failure.
func NewMailSendError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMailSendFailed,
		Message:   "certified letter submission failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPaymentSignatureError reports an invalid webhook signature.
func NewPaymentSignatureError() *StandardError {
	return &StandardError{
		Code:      ErrCodePaymentBadSig,
		Message:   "webhook signature verification failed",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTokenNotFoundError reports an unknown activation token.
func NewTokenNotFoundError() *StandardError {
	return &StandardError{
		Code:      ErrCodeTokenNotFound,
		Message:   "activation token not found or already used",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTokenExpiredError reports an expired activation token.
func NewTokenExpiredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeTokenExpired,
		Message:   "activation token has expired",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIdentityProviderError wraps an identity-provider failure during
// account activation.
func NewIdentityProviderError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIdentityFailed,
		Message:   "identity provider request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification helpers
// ==========================

// AsStandard extracts a *StandardError from err, or wraps err as an
// internal error.
func AsStandard(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsValidation reports whether err is an input or output schema violation.
func IsValidation(err error) bool {
	var stdErr *StandardError
	if !errors.As(err, &stdErr) {
		return false
	}
	return stdErr.Code == ErrCodeValidationFailed || stdErr.Code == ErrCodeOutputSchemaMismatch
}

// IsGenerationFailure reports whether err means the AI backend produced no
// usable output.
func IsGenerationFailure(err error) bool {
	var stdErr *StandardError
	if !errors.As(err, &stdErr) {
		return false
	}
	return stdErr.Code == ErrCodeGenerationFailed
}

// HasCode reports whether err carries the given error code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if !errors.As(err, &stdErr) {
		return false
	}
	return stdErr.Code == code
}
