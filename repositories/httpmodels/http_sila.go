package httpmodels

import (
	"encoding/json"
	"time"

	"github.com/guregu/null/v5"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/pure_utils"
)

type HTTPSilaAuthorization struct {
	Decision        string `json:"decision"`
	AuthorizationId string `json:"authorization_id"`
	DeclineReason   string `json:"decline_reason"`
}

// AdaptSilaAuthorization maps the provider's risk decision. Anything other
// than the known decision values is an error, not a pass.
func AdaptSilaAuthorization(auth HTTPSilaAuthorization) (models.AuthorizationDecision, error) {
	outcome, err := models.AuthorizationOutcomeFrom(auth.Decision)
	if err != nil {
		return models.AuthorizationDecision{}, err
	}
	return models.AuthorizationDecision{
		Outcome:         outcome,
		AuthorizationId: auth.AuthorizationId,
		DeclineReason:   auth.DeclineReason,
	}, nil
}

type HTTPSilaTransfer struct {
	TransferId  string `json:"transfer_id"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount_cents"`
	Cancellable bool   `json:"cancellable"`
	Descriptor  string `json:"descriptor"`
}

func AdaptSilaTransfer(transfer HTTPSilaTransfer, rawBody []byte) (models.TransferSnapshot, error) {
	status, err := models.TransferStatusFrom(transfer.Status)
	if err != nil {
		return models.TransferSnapshot{}, err
	}
	return models.TransferSnapshot{
		ExternalTransferId: transfer.TransferId,
		Status:             status,
		AmountCents:        transfer.AmountCents,
		Cancellable:        transfer.Cancellable,
		Descriptor:         transfer.Descriptor,
		RawPayload:         json.RawMessage(rawBody),
	}, nil
}

type HTTPSilaRecurringTransfer struct {
	RecurringTransferId string `json:"recurring_transfer_id"`
}

type HTTPSilaRecurringOccurrence struct {
	Id           string    `json:"id"`
	TransferId   *string   `json:"transfer_id"`
	ScheduledFor time.Time `json:"scheduled_for"`
	AmountCents  int64     `json:"amount_cents"`
	Status       string    `json:"status"`
}

type HTTPSilaRecurringOccurrences struct {
	Occurrences []HTTPSilaRecurringOccurrence `json:"occurrences"`
}

func AdaptSilaRecurringOccurrences(resp HTTPSilaRecurringOccurrences) []models.RecurringOccurrence {
	return pure_utils.Map(resp.Occurrences, func(occ HTTPSilaRecurringOccurrence) models.RecurringOccurrence {
		return models.RecurringOccurrence{
			Id:                 occ.Id,
			ExternalTransferId: null.StringFromPtr(occ.TransferId),
			ScheduledFor:       occ.ScheduledFor,
			AmountCents:        occ.AmountCents,
			Status:             occ.Status,
		}
	})
}

type HTTPSilaOriginator struct {
	OriginatorId string `json:"originator_id"`
}
