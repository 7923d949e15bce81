package models

import (
	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
)

type AuthorizationOutcome string

const (
	AuthorizationApproved           AuthorizationOutcome = "approved"
	AuthorizationDeclined           AuthorizationOutcome = "declined"
	AuthorizationUserActionRequired AuthorizationOutcome = "user_action_required"
)

func AuthorizationOutcomeFrom(s string) (AuthorizationOutcome, error) {
	switch AuthorizationOutcome(s) {
	case AuthorizationApproved, AuthorizationDeclined, AuthorizationUserActionRequired:
		return AuthorizationOutcome(s), nil
	}
	return "", errors.Wrapf(ErrUnknownProviderDecision, "%q", s)
}

// AuthorizationDecision is the provider's pre-flight risk decision, mapped to
// a tagged union at the adapter boundary. AuthorizationId is only set on
// approval; DeclineReason only on decline. An authorization id is single-use:
// it is minted fresh per payment attempt and consumed by exactly one create.
type AuthorizationDecision struct {
	Outcome         AuthorizationOutcome
	AuthorizationId string
	DeclineReason   string
}

func (d AuthorizationDecision) Approved() bool {
	return d.Outcome == AuthorizationApproved
}

type CounterpartyIdentity struct {
	LegalName string
	Email     string
	Phone     string
}

// AuthorizeTransferInput is the adapter-facing shape of an authorization call.
type AuthorizeTransferInput struct {
	AccessRef    string
	AccountRef   string
	Direction    TransferDirection
	AmountCents  int64
	Counterparty CounterpartyIdentity
	OriginatorId null.String
}
