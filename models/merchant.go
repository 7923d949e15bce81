package models

import (
	"time"

	"github.com/guregu/null/v5"
)

// Merchant is a read-only projection of the merchant domain object, limited
// to the fields the transfer engine consumes: the provider access token, the
// linked bank account, and optional merchant-issued API credentials.
type Merchant struct {
	Id               string
	LegalName        string
	Email            null.String
	Website          null.String
	Address          null.String
	City             null.String
	State            null.String
	PostalCode       null.String
	AccessRef        null.String
	LinkedAccountRef null.String
	ProviderAppId    null.String
	ProviderAppKey   null.String
	CreatedAt        time.Time
}

// HasOwnCredentials reports whether the merchant was issued its own provider
// API credentials. When true, calls on behalf of this merchant use those
// credentials instead of the platform-wide ones.
func (m Merchant) HasOwnCredentials() bool {
	return m.ProviderAppId.Valid && m.ProviderAppKey.Valid
}
