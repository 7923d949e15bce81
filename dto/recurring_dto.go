package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/shifi/transfers-backend/models"
)

type RecurringScheduleBody struct {
	Frequency   string     `json:"frequency" binding:"required"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     null.Time  `json:"end_date"`
	DayOfWeek   null.Int32 `json:"day_of_week"`
	DayOfMonth  null.Int32 `json:"day_of_month"`
	Description string     `json:"description"`
}

type RecurringTransferCreateBody struct {
	AccessRef    string                `json:"access_ref" binding:"required"`
	AccountRef   string                `json:"account_ref" binding:"required"`
	AmountCents  int64                 `json:"amount_cents" binding:"required"`
	Counterparty CounterpartyBody      `json:"counterparty" binding:"required"`
	Schedule     RecurringScheduleBody `json:"schedule" binding:"required"`
	ContractId   string                `json:"contract_id" binding:"required"`
	MerchantId   null.String           `json:"merchant_id"`
	OriginatorId null.String           `json:"originator_id"`
}

func AdaptRecurringTransferIntent(body RecurringTransferCreateBody) (models.RecurringTransferIntent, error) {
	frequency, err := models.RecurringFrequencyFrom(body.Schedule.Frequency)
	if err != nil {
		return models.RecurringTransferIntent{}, err
	}

	return models.RecurringTransferIntent{
		AccessRef:    body.AccessRef,
		AccountRef:   body.AccountRef,
		AmountCents:  body.AmountCents,
		Counterparty: AdaptCounterpartyIdentity(body.Counterparty),
		Schedule: models.RecurringTransferSchedule{
			Frequency:   frequency,
			StartDate:   body.Schedule.StartDate,
			EndDate:     body.Schedule.EndDate,
			DayOfWeek:   body.Schedule.DayOfWeek,
			DayOfMonth:  body.Schedule.DayOfMonth,
			Description: body.Schedule.Description,
		},
		ContractId:   body.ContractId,
		MerchantId:   body.MerchantId,
		OriginatorId: body.OriginatorId,
	}, nil
}

type RecurringResult struct {
	Success             bool   `json:"success"`
	RecurringTransferId string `json:"recurring_transfer_id,omitempty"`
	Message             string `json:"message,omitempty"`
}

func AdaptRecurringResultDto(result models.RecurringResult) RecurringResult {
	return RecurringResult{
		Success:             result.Success,
		RecurringTransferId: result.RecurringTransferId,
		Message:             result.Message,
	}
}

type RecurringOccurrence struct {
	Id                 string      `json:"id"`
	ExternalTransferId null.String `json:"external_transfer_id"`
	ScheduledFor       time.Time   `json:"scheduled_for"`
	AmountCents        int64       `json:"amount_cents"`
	Status             string      `json:"status"`
}

func AdaptRecurringOccurrenceDto(occurrence models.RecurringOccurrence) RecurringOccurrence {
	return RecurringOccurrence{
		Id:                 occurrence.Id,
		ExternalTransferId: occurrence.ExternalTransferId,
		ScheduledFor:       occurrence.ScheduledFor,
		AmountCents:        occurrence.AmountCents,
		Status:             occurrence.Status,
	}
}
