package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransferStatusFrom(t *testing.T) {
	for _, s := range []string{"pending", "posted", "settled", "returned", "cancelled", "failed"} {
		status, err := TransferStatusFrom(s)
		assert.NoError(t, err)
		assert.Equal(t, TransferStatus(s), status)
	}

	_, err := TransferStatusFrom("on_hold")
	assert.ErrorIs(t, err, ErrUnknownProviderStatus)

	_, err = TransferStatusFrom("")
	assert.ErrorIs(t, err, ErrUnknownProviderStatus)
}

func TestTransferDirectionFrom(t *testing.T) {
	direction, err := TransferDirectionFrom("debit")
	assert.NoError(t, err)
	assert.Equal(t, TransferDirectionDebit, direction)

	_, err = TransferDirectionFrom("sideways")
	assert.ErrorIs(t, err, BadParameterError)
}

func TestTransferStatusIsTerminal(t *testing.T) {
	tts := []struct {
		status   TransferStatus
		terminal bool
	}{
		{TransferStatusPending, false},
		{TransferStatusPosted, false},
		{TransferStatusSettled, true},
		{TransferStatusReturned, true},
		{TransferStatusCancelled, true},
		{TransferStatusFailed, true},
	}

	for _, tt := range tts {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestTransferStatusCanTransitionTo(t *testing.T) {
	tts := []struct {
		from    TransferStatus
		to      TransferStatus
		allowed bool
	}{
		{TransferStatusPending, TransferStatusPosted, true},
		{TransferStatusPending, TransferStatusFailed, true},
		{TransferStatusPending, TransferStatusCancelled, true},
		{TransferStatusPending, TransferStatusSettled, false},
		{TransferStatusPosted, TransferStatusSettled, true},
		{TransferStatusPosted, TransferStatusReturned, true},
		{TransferStatusPosted, TransferStatusCancelled, true},
		{TransferStatusPosted, TransferStatusPending, false},
		{TransferStatusSettled, TransferStatusReturned, false},
		{TransferStatusCancelled, TransferStatusPosted, false},
		{TransferStatusFailed, TransferStatusPending, false},
	}

	for _, tt := range tts {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
