package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/guregu/null/v5"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/utils"
)

type DBOriginatorRegistration struct {
	Id               string          `db:"id"`
	MerchantId       string          `db:"merchant_id"`
	OriginatorId     null.String     `db:"originator_id"`
	OnboardingStatus string          `db:"onboarding_status"`
	RawPayload       json.RawMessage `db:"raw_payload"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

const TABLE_ORIGINATOR_REGISTRATIONS = "originator_registrations"

var SelectOriginatorRegistrationsColumn = utils.ColumnList[DBOriginatorRegistration]()

func AdaptOriginatorRegistration(db DBOriginatorRegistration) (models.OriginatorRegistration, error) {
	status, err := models.OnboardingStatusFrom(db.OnboardingStatus)
	if err != nil {
		return models.OriginatorRegistration{}, err
	}

	return models.OriginatorRegistration{
		Id:               db.Id,
		MerchantId:       db.MerchantId,
		OriginatorId:     db.OriginatorId,
		OnboardingStatus: status,
		RawPayload:       db.RawPayload,
		CreatedAt:        db.CreatedAt,
		UpdatedAt:        db.UpdatedAt,
	}, nil
}
