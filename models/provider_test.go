package models

import (
	"testing"

	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
)

func TestProviderCredentialsSandboxAccess(t *testing.T) {
	tests := []struct {
		accessRef string
		sandbox   bool
	}{
		{"sandbox.merchant-token", true},
		{"merchant-token", false},
		{"SANDBOX.merchant-token", false},
		{"", false},
	}
	for _, tt := range tests {
		creds := ProviderCredentials{AccessRef: tt.accessRef}
		assert.Equal(t, tt.sandbox, creds.SandboxAccess(), tt.accessRef)
	}
}

func TestProviderCredentialsHasMerchantCredentials(t *testing.T) {
	assert.False(t, ProviderCredentials{AccessRef: "merchant-token"}.HasMerchantCredentials())
	assert.False(t, ProviderCredentials{AppId: null.StringFrom("app-id")}.HasMerchantCredentials())
	assert.True(t, ProviderCredentials{
		AppId:  null.StringFrom("app-id"),
		AppKey: null.StringFrom("app-key"),
	}.HasMerchantCredentials())
}
