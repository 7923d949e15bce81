package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/shifi/transfers-backend/models"
)

type SilaTransferRepository struct {
	mock.Mock
}

func (m *SilaTransferRepository) AuthorizeTransfer(ctx context.Context,
	creds models.ProviderCredentials, input models.AuthorizeTransferInput,
) (models.AuthorizationDecision, error) {
	args := m.Called(ctx, creds, input)
	return args.Get(0).(models.AuthorizationDecision), args.Error(1)
}

func (m *SilaTransferRepository) CreateTransfer(ctx context.Context,
	creds models.ProviderCredentials, input models.ProviderTransferCreateInput,
) (models.TransferSnapshot, error) {
	args := m.Called(ctx, creds, input)
	return args.Get(0).(models.TransferSnapshot), args.Error(1)
}

func (m *SilaTransferRepository) GetTransfer(ctx context.Context,
	creds models.ProviderCredentials, externalTransferId string,
) (models.TransferSnapshot, error) {
	args := m.Called(ctx, creds, externalTransferId)
	return args.Get(0).(models.TransferSnapshot), args.Error(1)
}

func (m *SilaTransferRepository) CancelTransfer(ctx context.Context,
	creds models.ProviderCredentials, externalTransferId string,
) (models.TransferSnapshot, error) {
	args := m.Called(ctx, creds, externalTransferId)
	return args.Get(0).(models.TransferSnapshot), args.Error(1)
}

func (m *SilaTransferRepository) CreateRecurringTransfer(ctx context.Context,
	creds models.ProviderCredentials, intent models.RecurringTransferIntent,
) (models.RecurringTransferHandle, error) {
	args := m.Called(ctx, creds, intent)
	return args.Get(0).(models.RecurringTransferHandle), args.Error(1)
}

func (m *SilaTransferRepository) ListRecurringOccurrences(ctx context.Context,
	creds models.ProviderCredentials, recurringTransferId string,
) ([]models.RecurringOccurrence, error) {
	args := m.Called(ctx, creds, recurringTransferId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecurringOccurrence), args.Error(1)
}

func (m *SilaTransferRepository) RegisterOriginator(ctx context.Context,
	creds models.ProviderCredentials, profile models.OriginatorProfile,
) (string, json.RawMessage, error) {
	args := m.Called(ctx, creds, profile)
	var raw json.RawMessage
	if args.Get(1) != nil {
		raw = args.Get(1).(json.RawMessage)
	}
	return args.String(0), raw, args.Error(2)
}
