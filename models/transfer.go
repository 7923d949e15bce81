package models

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
)

type TransferDirection string

const (
	// TransferDirectionDebit pulls funds from the counterparty into the platform/merchant.
	TransferDirectionDebit TransferDirection = "debit"
	// TransferDirectionCredit pushes funds out to the recipient.
	TransferDirectionCredit TransferDirection = "credit"
)

func TransferDirectionFrom(s string) (TransferDirection, error) {
	switch TransferDirection(s) {
	case TransferDirectionDebit, TransferDirectionCredit:
		return TransferDirection(s), nil
	}
	return "", errors.Wrapf(BadParameterError, "unknown transfer direction %q", s)
}

type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusPosted    TransferStatus = "posted"
	TransferStatusSettled   TransferStatus = "settled"
	TransferStatusReturned  TransferStatus = "returned"
	TransferStatusCancelled TransferStatus = "cancelled"
	TransferStatusFailed    TransferStatus = "failed"
)

// TransferStatusFrom parses a provider-reported status. Unrecognized values
// are rejected so the orchestrator never branches on raw provider strings.
func TransferStatusFrom(s string) (TransferStatus, error) {
	switch TransferStatus(s) {
	case TransferStatusPending, TransferStatusPosted, TransferStatusSettled,
		TransferStatusReturned, TransferStatusCancelled, TransferStatusFailed:
		return TransferStatus(s), nil
	}
	return "", errors.Wrapf(ErrUnknownProviderStatus, "%q", s)
}

// TerminalTransferStatuses lists the statuses no further transition may
// leave. The persistence layer guards status writes on this same list, so a
// stale reconcile snapshot can never overwrite a terminal row.
var TerminalTransferStatuses = []TransferStatus{
	TransferStatusSettled,
	TransferStatusReturned,
	TransferStatusCancelled,
	TransferStatusFailed,
}

// IsTerminal reports whether no further status transition is allowed.
func (s TransferStatus) IsTerminal() bool {
	for _, terminal := range TerminalTransferStatuses {
		if s == terminal {
			return true
		}
	}
	return false
}

var transferStatusTransitions = map[TransferStatus][]TransferStatus{
	TransferStatusPending: {TransferStatusPosted, TransferStatusFailed, TransferStatusCancelled},
	TransferStatusPosted:  {TransferStatusSettled, TransferStatusReturned, TransferStatusCancelled},
}

// CanTransitionTo implements the local state machine for explicit transitions
// (cancellation). Reconciliation from the provider is allowed to skip
// intermediate states (ACH settlement can post and settle between two polls)
// but must still never leave a terminal state: callers check IsTerminal.
func (s TransferStatus) CanTransitionTo(target TransferStatus) bool {
	for _, allowed := range transferStatusTransitions[s] {
		if target == allowed {
			return true
		}
	}
	return false
}

// Transfer is the authoritative local record of a transfer attempt. Amounts
// are USD integer cents. The provider's view is authoritative for status;
// the local row is a projection updated by reconciliation.
type Transfer struct {
	Id                 string
	ExternalTransferId null.String
	AuthorizationId    string
	Direction          TransferDirection
	AmountCents        int64
	Status             TransferStatus
	RoutedToShifi      bool
	ContractId         null.String
	MerchantId         null.String
	Description        string
	Metadata           map[string]string
	Cancellable        bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type TransferCreateInput struct {
	Id                 string
	ExternalTransferId string
	AuthorizationId    string
	Direction          TransferDirection
	AmountCents        int64
	Status             TransferStatus
	RoutedToShifi      bool
	ContractId         null.String
	MerchantId         null.String
	Description        string
	Metadata           map[string]string
	Cancellable        bool
}

// TransferSnapshot is the provider's current view of a transfer, mapped at
// the adapter boundary. RawPayload is retained verbatim for audit logging.
type TransferSnapshot struct {
	ExternalTransferId string
	Status             TransferStatus
	AmountCents        int64
	Cancellable        bool
	Descriptor         string
	RawPayload         json.RawMessage
}

type ListTransfersFilters struct {
	MerchantId null.String
	ContractId null.String
}

// PaymentIntent is the orchestrator's input for a customer payment.
type PaymentIntent struct {
	AccessRef    string
	AccountRef   string
	AmountCents  int64
	Description  string
	Counterparty CounterpartyIdentity
	ContractId   string
	MerchantId   null.String
	OriginatorId null.String
	Metadata     map[string]string
}

// PayoutIntent is the credit-direction mirror for merchant payouts.
type PayoutIntent struct {
	MerchantId  string
	AmountCents int64
	Description string
	ContractId  string
	Metadata    map[string]string
}

// PaymentResult is the non-exceptional outcome of a payment attempt. Risk
// declines and user-action-required are regular results, not errors.
type PaymentResult struct {
	Success    bool
	TransferId string
	Status     TransferStatus
	Message    string
}
