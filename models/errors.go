package models

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// DB related errors
var ErrIgnoreRollBackError = errors.New("ignore rollback error")

// Configuration errors: fatal for the attempt, never retried, never defaulted.
var (
	ErrNotConfigured       = errors.New("missing configuration")
	ErrMerchantNotLinked   = errors.Wrap(ErrNotConfigured, "merchant has no linked bank account")
	ErrNoSettlementAccount = errors.Wrap(ErrNotConfigured, "platform settlement account is not configured")
)

// Transfer lifecycle errors
var (
	ErrTransferNotCancellable = errors.Wrap(BadParameterError, "transfer is not cancellable")
	ErrTransferAlreadyExists  = errors.Wrap(ConflictError, "a transfer already exists for this authorization")

	// ErrUnknownProviderDecision is returned when the provider answers an
	// authorization with a decision value we do not recognize. Fail closed:
	// an unknown decision never clears money to move.
	ErrUnknownProviderDecision = errors.New("unrecognized authorization decision from provider")

	// ErrUnknownProviderStatus is the fail-closed equivalent for transfer
	// statuses reported by the provider.
	ErrUnknownProviderStatus = errors.New("unrecognized transfer status from provider")
)

// ProviderError carries the provider's raw error payload so that it can be
// audit-logged. The adapter never retries; retry policy belongs to the caller.
type ProviderError struct {
	Operation  string
	StatusCode int
	RawBody    []byte
}

func (e ProviderError) Error() string {
	return fmt.Sprintf("provider error on %s: http status %d", e.Operation, e.StatusCode)
}
