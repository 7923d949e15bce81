package models

import (
	"strings"
	"time"

	"github.com/guregu/null/v5"
)

// ProviderCredentials selects which API credentials a provider call runs
// under. When AppId/AppKey are set (merchant-issued credentials) they replace
// the platform-wide ones and the environment is inferred from the access
// token itself.
type ProviderCredentials struct {
	AccessRef string
	AppId     null.String
	AppKey    null.String
}

func (c ProviderCredentials) HasMerchantCredentials() bool {
	return c.AppId.Valid && c.AppKey.Valid
}

// SandboxAccess infers the provider environment from the access token's own
// encoding, for calls running under merchant-issued credentials.
func (c ProviderCredentials) SandboxAccess() bool {
	return strings.HasPrefix(c.AccessRef, "sandbox.")
}

// ProviderTransferCreateInput consumes a single-use authorization id.
// AccountRef is the account the transfer draws on; DestinationAccountRef is
// only set on credits whose destination is not implied by the access token
// (merchant payouts from the settlement account).
type ProviderTransferCreateInput struct {
	AuthorizationId       string
	AccountRef            string
	DestinationAccountRef null.String
	Direction             TransferDirection
	AmountCents           int64
	Description           string
	OriginatorId          null.String
}

// RecurringOccurrence is a provider-side occurrence of a recurring transfer.
// Occurrences are never persisted locally; the status is informational and
// passed through as reported.
type RecurringOccurrence struct {
	Id                 string
	ExternalTransferId null.String
	ScheduledFor       time.Time
	AmountCents        int64
	Status             string
}
