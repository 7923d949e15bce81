package models

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
)

type OnboardingStatus string

const (
	OnboardingPending   OnboardingStatus = "pending"
	OnboardingCompleted OnboardingStatus = "completed"
	OnboardingFailed    OnboardingStatus = "failed"
)

func OnboardingStatusFrom(s string) (OnboardingStatus, error) {
	switch OnboardingStatus(s) {
	case OnboardingPending, OnboardingCompleted, OnboardingFailed:
		return OnboardingStatus(s), nil
	}
	return "", errors.Wrapf(BadParameterError, "unknown onboarding status %q", s)
}

// OriginatorRegistration records a merchant's registration as a payment
// originator on the platform's umbrella ACH account. One row per merchant.
type OriginatorRegistration struct {
	Id               string
	MerchantId       string
	OriginatorId     null.String
	OnboardingStatus OnboardingStatus
	RawPayload       json.RawMessage
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type OriginatorRegistrationCreateInput struct {
	Id               string
	MerchantId       string
	OriginatorId     null.String
	OnboardingStatus OnboardingStatus
	RawPayload       json.RawMessage
}

// OriginatorProfile is the registration payload sent to the provider, built
// from the merchant profile with deterministic fallbacks for missing fields.
type OriginatorProfile struct {
	MerchantId string
	LegalName  string
	Email      string
	Website    string
	Address    string
	City       string
	State      string
	PostalCode string
}
