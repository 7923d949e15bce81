package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/shifi/transfers-backend/models"
)

type OriginatorRegistration struct {
	Id               string      `json:"id"`
	MerchantId       string      `json:"merchant_id"`
	OriginatorId     null.String `json:"originator_id"`
	OnboardingStatus string      `json:"onboarding_status"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func AdaptOriginatorRegistrationDto(registration models.OriginatorRegistration) OriginatorRegistration {
	return OriginatorRegistration{
		Id:               registration.Id,
		MerchantId:       registration.MerchantId,
		OriginatorId:     registration.OriginatorId,
		OnboardingStatus: string(registration.OnboardingStatus),
		CreatedAt:        registration.CreatedAt,
		UpdatedAt:        registration.UpdatedAt,
	}
}
