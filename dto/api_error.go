package dto

type APIErrorResponse struct {
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"error_code,omitempty"`
}

type ErrorCode string

const (
	// configuration related
	NotConfigured ErrorCode = "not_configured"

	// transfer lifecycle related
	TransferNotCancellable ErrorCode = "transfer_not_cancellable"
	TransferAlreadyExists  ErrorCode = "transfer_already_exists"

	// provider related
	ProviderRejected        ErrorCode = "provider_rejected"
	UnknownProviderResponse ErrorCode = "unknown_provider_response"
)
