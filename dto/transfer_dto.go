package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/shifi/transfers-backend/models"
)

type Transfer struct {
	Id                 string            `json:"id"`
	ExternalTransferId null.String       `json:"external_transfer_id"`
	Direction          string            `json:"direction"`
	AmountCents        int64             `json:"amount_cents"`
	Status             string            `json:"status"`
	RoutedToShifi      bool              `json:"routed_to_shifi"`
	ContractId         null.String       `json:"contract_id"`
	MerchantId         null.String       `json:"merchant_id"`
	Description        string            `json:"description"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	Cancellable        bool              `json:"cancellable"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func AdaptTransferDto(transfer models.Transfer) Transfer {
	return Transfer{
		Id:                 transfer.Id,
		ExternalTransferId: transfer.ExternalTransferId,
		Direction:          string(transfer.Direction),
		AmountCents:        transfer.AmountCents,
		Status:             string(transfer.Status),
		RoutedToShifi:      transfer.RoutedToShifi,
		ContractId:         transfer.ContractId,
		MerchantId:         transfer.MerchantId,
		Description:        transfer.Description,
		Metadata:           transfer.Metadata,
		Cancellable:        transfer.Cancellable,
		CreatedAt:          transfer.CreatedAt,
		UpdatedAt:          transfer.UpdatedAt,
	}
}
