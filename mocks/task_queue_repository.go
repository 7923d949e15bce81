package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shifi/transfers-backend/repositories"
)

type TaskQueueRepository struct {
	mock.Mock
}

func (m *TaskQueueRepository) EnqueueReconcileTransferTask(
	ctx context.Context,
	tx repositories.Transaction,
	externalTransferId string,
) error {
	args := m.Called(ctx, tx, externalTransferId)
	return args.Error(0)
}

func (m *TaskQueueRepository) EnqueueReconcileTransferTaskMany(
	ctx context.Context,
	externalTransferIds []string,
) error {
	args := m.Called(ctx, externalTransferIds)
	return args.Error(0)
}
