package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/utils"
)

type DBTransfer struct {
	Id                 string      `db:"id"`
	ExternalTransferId null.String `db:"external_transfer_id"`
	AuthorizationId    string      `db:"authorization_id"`
	Direction          string      `db:"direction"`
	AmountCents        int64       `db:"amount_cents"`
	Status             string      `db:"status"`
	RoutedToShifi      bool        `db:"routed_to_shifi"`
	ContractId         null.String `db:"contract_id"`
	MerchantId         null.String `db:"merchant_id"`
	Description        string      `db:"description"`
	Metadata           []byte      `db:"metadata"`
	Cancellable        bool        `db:"cancellable"`
	CreatedAt          time.Time   `db:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at"`
}

const TABLE_TRANSFERS = "transfers"

var SelectTransfersColumn = utils.ColumnList[DBTransfer]()

func AdaptTransfer(db DBTransfer) (models.Transfer, error) {
	direction, err := models.TransferDirectionFrom(db.Direction)
	if err != nil {
		return models.Transfer{}, err
	}
	status, err := models.TransferStatusFrom(db.Status)
	if err != nil {
		return models.Transfer{}, err
	}

	var metadata map[string]string
	if len(db.Metadata) > 0 {
		if err := json.Unmarshal(db.Metadata, &metadata); err != nil {
			return models.Transfer{}, errors.Wrapf(err, "can't decode metadata of transfer %s", db.Id)
		}
	}

	return models.Transfer{
		Id:                 db.Id,
		ExternalTransferId: db.ExternalTransferId,
		AuthorizationId:    db.AuthorizationId,
		Direction:          direction,
		AmountCents:        db.AmountCents,
		Status:             status,
		RoutedToShifi:      db.RoutedToShifi,
		ContractId:         db.ContractId,
		MerchantId:         db.MerchantId,
		Description:        db.Description,
		Metadata:           metadata,
		Cancellable:        db.Cancellable,
		CreatedAt:          db.CreatedAt,
		UpdatedAt:          db.UpdatedAt,
	}, nil
}
