package usecases

import (
	"context"
	"testing"

	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/suite"

	"github.com/shifi/transfers-backend/mocks"
	"github.com/shifi/transfers-backend/models"
)

type ReconciliationUsecaseTestSuite struct {
	suite.Suite
	executorFactory        *mocks.ExecutorFactory
	executor               *mocks.Executor
	transfersRepository    *mocks.TransfersRepository
	merchantsRepository    *mocks.MerchantsRepository
	silaTransferRepository *mocks.SilaTransferRepository
	taskQueueRepository    *mocks.TaskQueueRepository

	ctx      context.Context
	transfer models.Transfer
}

func (suite *ReconciliationUsecaseTestSuite) SetupTest() {
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.executor = new(mocks.Executor)
	suite.transfersRepository = new(mocks.TransfersRepository)
	suite.merchantsRepository = new(mocks.MerchantsRepository)
	suite.silaTransferRepository = new(mocks.SilaTransferRepository)
	suite.taskQueueRepository = new(mocks.TaskQueueRepository)

	suite.ctx = context.Background()
	suite.transfer = models.Transfer{
		Id:                 "transfer-1",
		ExternalTransferId: null.StringFrom("sila-xfer-1"),
		Status:             models.TransferStatusPending,
		Cancellable:        true,
	}
}

func (suite *ReconciliationUsecaseTestSuite) makeUsecase() ReconciliationUsecase {
	return ReconciliationUsecase{
		executorFactory:        suite.executorFactory,
		transfersRepository:    suite.transfersRepository,
		merchantsRepository:    suite.merchantsRepository,
		silaTransferRepository: suite.silaTransferRepository,
		taskQueueRepository:    suite.taskQueueRepository,
	}
}

func (suite *ReconciliationUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.executorFactory.AssertExpectations(t)
	suite.transfersRepository.AssertExpectations(t)
	suite.merchantsRepository.AssertExpectations(t)
	suite.silaTransferRepository.AssertExpectations(t)
	suite.taskQueueRepository.AssertExpectations(t)
}

func (suite *ReconciliationUsecaseTestSuite) Test_ReconcileTransfer_applies_provider_status() {
	suite.silaTransferRepository.On("GetTransfer", suite.ctx, models.ProviderCredentials{}, "sila-xfer-1").
		Return(models.TransferSnapshot{
			ExternalTransferId: "sila-xfer-1",
			Status:             models.TransferStatusPosted,
			Cancellable:        true,
		}, nil)
	suite.executorFactory.On("NewExecutor").Return(suite.executor)
	suite.transfersRepository.On("UpdateTransferStatus", suite.ctx, suite.executor,
		"transfer-1", models.TransferStatusPosted, true).
		Return(int64(1), nil)

	result, err := suite.makeUsecase().ReconcileTransfer(suite.ctx, suite.transfer)

	suite.NoError(err)
	suite.Equal(models.TransferStatusPosted, result.Status)
	suite.AssertExpectations()
}

func (suite *ReconciliationUsecaseTestSuite) Test_ReconcileTransfer_may_skip_intermediate_states() {
	suite.silaTransferRepository.On("GetTransfer", suite.ctx, models.ProviderCredentials{}, "sila-xfer-1").
		Return(models.TransferSnapshot{
			ExternalTransferId: "sila-xfer-1",
			Status:             models.TransferStatusSettled,
			Cancellable:        false,
		}, nil)
	suite.executorFactory.On("NewExecutor").Return(suite.executor)
	suite.transfersRepository.On("UpdateTransferStatus", suite.ctx, suite.executor,
		"transfer-1", models.TransferStatusSettled, false).
		Return(int64(1), nil)

	result, err := suite.makeUsecase().ReconcileTransfer(suite.ctx, suite.transfer)

	suite.NoError(err)
	suite.Equal(models.TransferStatusSettled, result.Status)
	suite.False(result.Cancellable)
	suite.AssertExpectations()
}

func (suite *ReconciliationUsecaseTestSuite) Test_ReconcileTransfer_unchanged_skips_write() {
	suite.silaTransferRepository.On("GetTransfer", suite.ctx, models.ProviderCredentials{}, "sila-xfer-1").
		Return(models.TransferSnapshot{
			ExternalTransferId: "sila-xfer-1",
			Status:             models.TransferStatusPending,
			Cancellable:        true,
		}, nil)

	result, err := suite.makeUsecase().ReconcileTransfer(suite.ctx, suite.transfer)

	suite.NoError(err)
	suite.Equal(models.TransferStatusPending, result.Status)
	suite.transfersRepository.AssertNotCalled(suite.T(), "UpdateTransferStatus")
	suite.AssertExpectations()
}

func (suite *ReconciliationUsecaseTestSuite) Test_ReconcileTransfer_terminal_row_untouched() {
	transfer := suite.transfer
	transfer.Status = models.TransferStatusReturned

	result, err := suite.makeUsecase().ReconcileTransfer(suite.ctx, transfer)

	suite.NoError(err)
	suite.Equal(models.TransferStatusReturned, result.Status)
	suite.silaTransferRepository.AssertNotCalled(suite.T(), "GetTransfer")
	suite.transfersRepository.AssertNotCalled(suite.T(), "UpdateTransferStatus")
	suite.AssertExpectations()
}

func (suite *ReconciliationUsecaseTestSuite) Test_ReconcileTransfer_without_external_id() {
	transfer := suite.transfer
	transfer.ExternalTransferId = null.String{}

	result, err := suite.makeUsecase().ReconcileTransfer(suite.ctx, transfer)

	suite.NoError(err)
	suite.Equal(models.TransferStatusPending, result.Status)
	suite.silaTransferRepository.AssertNotCalled(suite.T(), "GetTransfer")
	suite.AssertExpectations()
}

func (suite *ReconciliationUsecaseTestSuite) Test_ReconcileTransfer_merchant_credentials() {
	transfer := suite.transfer
	transfer.MerchantId = null.StringFrom("merchant-1")
	merchant := models.Merchant{
		Id:             "merchant-1",
		AccessRef:      null.StringFrom("sandbox.merchant-token"),
		ProviderAppId:  null.StringFrom("merchant-app-id"),
		ProviderAppKey: null.StringFrom("merchant-app-key"),
	}
	creds := models.ProviderCredentials{
		AccessRef: "sandbox.merchant-token",
		AppId:     null.StringFrom("merchant-app-id"),
		AppKey:    null.StringFrom("merchant-app-key"),
	}

	suite.executorFactory.On("NewExecutor").Return(suite.executor)
	suite.merchantsRepository.On("GetMerchantById", suite.ctx, suite.executor, "merchant-1").
		Return(merchant, nil)
	suite.silaTransferRepository.On("GetTransfer", suite.ctx, creds, "sila-xfer-1").
		Return(models.TransferSnapshot{
			ExternalTransferId: "sila-xfer-1",
			Status:             models.TransferStatusPending,
			Cancellable:        true,
		}, nil)

	_, err := suite.makeUsecase().ReconcileTransfer(suite.ctx, transfer)

	suite.NoError(err)
	suite.AssertExpectations()
}

func (suite *ReconciliationUsecaseTestSuite) Test_ReconcileTransfer_client_error_not_retried() {
	suite.silaTransferRepository.On("GetTransfer", suite.ctx, models.ProviderCredentials{}, "sila-xfer-1").
		Return(models.TransferSnapshot{}, models.ProviderError{
			Operation:  "get_transfer",
			StatusCode: 404,
		})

	_, err := suite.makeUsecase().ReconcileTransfer(suite.ctx, suite.transfer)

	suite.Error(err)
	suite.silaTransferRepository.AssertNumberOfCalls(suite.T(), "GetTransfer", 1)
	suite.AssertExpectations()
}

func (suite *ReconciliationUsecaseTestSuite) Test_ReconcileByExternalId_nominal() {
	suite.executorFactory.On("NewExecutor").Return(suite.executor)
	suite.transfersRepository.On("GetTransferByExternalId", suite.ctx, suite.executor, "sila-xfer-1").
		Return(&suite.transfer, nil)
	suite.silaTransferRepository.On("GetTransfer", suite.ctx, models.ProviderCredentials{}, "sila-xfer-1").
		Return(models.TransferSnapshot{
			ExternalTransferId: "sila-xfer-1",
			Status:             models.TransferStatusPosted,
			Cancellable:        true,
		}, nil)
	suite.transfersRepository.On("UpdateTransferStatus", suite.ctx, suite.executor,
		"transfer-1", models.TransferStatusPosted, true).
		Return(int64(1), nil)

	err := suite.makeUsecase().ReconcileByExternalId(suite.ctx, "sila-xfer-1")

	suite.NoError(err)
	suite.AssertExpectations()
}

func (suite *ReconciliationUsecaseTestSuite) Test_ReconcileByExternalId_missing_local_row() {
	suite.executorFactory.On("NewExecutor").Return(suite.executor)
	suite.transfersRepository.On("GetTransferByExternalId", suite.ctx, suite.executor, "sila-xfer-9").
		Return(nil, nil)

	err := suite.makeUsecase().ReconcileByExternalId(suite.ctx, "sila-xfer-9")

	suite.NoError(err)
	suite.silaTransferRepository.AssertNotCalled(suite.T(), "GetTransfer")
	suite.AssertExpectations()
}

func (suite *ReconciliationUsecaseTestSuite) Test_ReconcilePending_enqueues_tasks() {
	transfers := []models.Transfer{
		{Id: "transfer-1", ExternalTransferId: null.StringFrom("sila-xfer-1")},
		{Id: "transfer-2", ExternalTransferId: null.StringFrom("sila-xfer-2")},
	}

	suite.executorFactory.On("NewExecutor").Return(suite.executor)
	suite.transfersRepository.On("ListNonTerminalTransfers", suite.ctx, suite.executor).
		Return(transfers, nil)
	suite.taskQueueRepository.On("EnqueueReconcileTransferTaskMany", suite.ctx,
		[]string{"sila-xfer-1", "sila-xfer-2"}).
		Return(nil)

	err := suite.makeUsecase().ReconcilePending(suite.ctx)

	suite.NoError(err)
	suite.AssertExpectations()
}

func (suite *ReconciliationUsecaseTestSuite) Test_ReconcilePending_nothing_to_do() {
	suite.executorFactory.On("NewExecutor").Return(suite.executor)
	suite.transfersRepository.On("ListNonTerminalTransfers", suite.ctx, suite.executor).
		Return([]models.Transfer{}, nil)

	err := suite.makeUsecase().ReconcilePending(suite.ctx)

	suite.NoError(err)
	suite.taskQueueRepository.AssertNotCalled(suite.T(), "EnqueueReconcileTransferTaskMany")
	suite.AssertExpectations()
}

func TestReconciliationUsecase(t *testing.T) {
	suite.Run(t, new(ReconciliationUsecaseTestSuite))
}
