package dto

import (
	"github.com/guregu/null/v5"

	"github.com/shifi/transfers-backend/models"
)

type CounterpartyBody struct {
	LegalName string `json:"legal_name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func AdaptCounterpartyIdentity(body CounterpartyBody) models.CounterpartyIdentity {
	return models.CounterpartyIdentity{
		LegalName: body.LegalName,
		Email:     body.Email,
		Phone:     body.Phone,
	}
}

type PaymentCreateBody struct {
	AccessRef    string            `json:"access_ref" binding:"required"`
	AccountRef   string            `json:"account_ref" binding:"required"`
	AmountCents  int64             `json:"amount_cents" binding:"required"`
	Description  string            `json:"description"`
	Counterparty CounterpartyBody  `json:"counterparty" binding:"required"`
	ContractId   string            `json:"contract_id" binding:"required"`
	MerchantId   null.String       `json:"merchant_id"`
	OriginatorId null.String       `json:"originator_id"`
	Metadata     map[string]string `json:"metadata"`
}

func AdaptPaymentIntent(body PaymentCreateBody) models.PaymentIntent {
	return models.PaymentIntent{
		AccessRef:    body.AccessRef,
		AccountRef:   body.AccountRef,
		AmountCents:  body.AmountCents,
		Description:  body.Description,
		Counterparty: AdaptCounterpartyIdentity(body.Counterparty),
		ContractId:   body.ContractId,
		MerchantId:   body.MerchantId,
		OriginatorId: body.OriginatorId,
		Metadata:     body.Metadata,
	}
}

type PayoutCreateBody struct {
	MerchantId  string            `json:"merchant_id" binding:"required"`
	AmountCents int64             `json:"amount_cents" binding:"required"`
	Description string            `json:"description"`
	ContractId  string            `json:"contract_id" binding:"required"`
	Metadata    map[string]string `json:"metadata"`
}

func AdaptPayoutIntent(body PayoutCreateBody) models.PayoutIntent {
	return models.PayoutIntent{
		MerchantId:  body.MerchantId,
		AmountCents: body.AmountCents,
		Description: body.Description,
		ContractId:  body.ContractId,
		Metadata:    body.Metadata,
	}
}

type PaymentResult struct {
	Success    bool   `json:"success"`
	TransferId string `json:"transfer_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Message    string `json:"message,omitempty"`
}

func AdaptPaymentResultDto(result models.PaymentResult) PaymentResult {
	return PaymentResult{
		Success:    result.Success,
		TransferId: result.TransferId,
		Status:     string(result.Status),
		Message:    result.Message,
	}
}
