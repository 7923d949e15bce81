package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizationOutcomeFrom(t *testing.T) {
	outcome, err := AuthorizationOutcomeFrom("approved")
	assert.NoError(t, err)
	assert.Equal(t, AuthorizationApproved, outcome)

	outcome, err = AuthorizationOutcomeFrom("user_action_required")
	assert.NoError(t, err)
	assert.Equal(t, AuthorizationUserActionRequired, outcome)

	_, err = AuthorizationOutcomeFrom("maybe")
	assert.ErrorIs(t, err, ErrUnknownProviderDecision)
}

func TestAuthorizationDecisionApproved(t *testing.T) {
	assert.True(t, AuthorizationDecision{Outcome: AuthorizationApproved}.Approved())
	assert.False(t, AuthorizationDecision{Outcome: AuthorizationDeclined}.Approved())
	assert.False(t, AuthorizationDecision{Outcome: AuthorizationUserActionRequired}.Approved())
}
