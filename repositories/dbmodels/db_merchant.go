package dbmodels

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/utils"
)

type DBMerchant struct {
	Id               string      `db:"id"`
	LegalName        string      `db:"legal_name"`
	Email            null.String `db:"email"`
	Website          null.String `db:"website"`
	Address          null.String `db:"address"`
	City             null.String `db:"city"`
	State            null.String `db:"state"`
	PostalCode       null.String `db:"postal_code"`
	AccessRef        null.String `db:"access_ref"`
	LinkedAccountRef null.String `db:"linked_account_ref"`
	ProviderAppId    null.String `db:"provider_app_id"`
	ProviderAppKey   null.String `db:"provider_app_key"`
	CreatedAt        time.Time   `db:"created_at"`
}

const TABLE_MERCHANTS = "merchants"

var SelectMerchantsColumn = utils.ColumnList[DBMerchant]()

func AdaptMerchant(db DBMerchant) (models.Merchant, error) {
	return models.Merchant{
		Id:               db.Id,
		LegalName:        db.LegalName,
		Email:            db.Email,
		Website:          db.Website,
		Address:          db.Address,
		City:             db.City,
		State:            db.State,
		PostalCode:       db.PostalCode,
		AccessRef:        db.AccessRef,
		LinkedAccountRef: db.LinkedAccountRef,
		ProviderAppId:    db.ProviderAppId,
		ProviderAppKey:   db.ProviderAppKey,
		CreatedAt:        db.CreatedAt,
	}, nil
}
