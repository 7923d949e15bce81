package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/repositories"
)

type TransfersRepository struct {
	mock.Mock
}

func (m *TransfersRepository) CreateTransfer(ctx context.Context, exec repositories.Executor,
	input models.TransferCreateInput,
) error {
	args := m.Called(ctx, exec, input)
	return args.Error(0)
}

func (m *TransfersRepository) GetTransferById(ctx context.Context, exec repositories.Executor,
	transferId string,
) (models.Transfer, error) {
	args := m.Called(ctx, exec, transferId)
	return args.Get(0).(models.Transfer), args.Error(1)
}

func (m *TransfersRepository) GetTransferByExternalId(ctx context.Context, exec repositories.Executor,
	externalTransferId string,
) (*models.Transfer, error) {
	args := m.Called(ctx, exec, externalTransferId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transfer), args.Error(1)
}

func (m *TransfersRepository) ListTransfers(ctx context.Context, exec repositories.Executor,
	filters models.ListTransfersFilters,
) ([]models.Transfer, error) {
	args := m.Called(ctx, exec, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transfer), args.Error(1)
}

func (m *TransfersRepository) ListNonTerminalTransfers(ctx context.Context, exec repositories.Executor,
) ([]models.Transfer, error) {
	args := m.Called(ctx, exec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transfer), args.Error(1)
}

func (m *TransfersRepository) UpdateTransferStatus(ctx context.Context, exec repositories.Executor,
	transferId string, status models.TransferStatus, cancellable bool,
) (int64, error) {
	args := m.Called(ctx, exec, transferId, status, cancellable)
	return args.Get(0).(int64), args.Error(1)
}
