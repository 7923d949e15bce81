package usecases

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/repositories"
	"github.com/shifi/transfers-backend/usecases/executor_factory"
	"github.com/shifi/transfers-backend/utils"
)

const (
	nbFetchRetries  = 3
	fetchRetryDelay = 500 * time.Millisecond
)

type reconciliationStorage interface {
	GetTransferByExternalId(ctx context.Context, exec repositories.Executor,
		externalTransferId string) (*models.Transfer, error)
	ListNonTerminalTransfers(ctx context.Context, exec repositories.Executor) ([]models.Transfer, error)
	UpdateTransferStatus(ctx context.Context, exec repositories.Executor, transferId string,
		status models.TransferStatus, cancellable bool) (int64, error)
}

type reconciliationProviderRepository interface {
	GetTransfer(ctx context.Context, creds models.ProviderCredentials,
		externalTransferId string) (models.TransferSnapshot, error)
}

type reconciliationMerchantsRepository interface {
	GetMerchantById(ctx context.Context, exec repositories.Executor,
		merchantId string) (models.Merchant, error)
}

type taskEnqueuer interface {
	EnqueueReconcileTransferTaskMany(ctx context.Context, externalTransferIds []string) error
}

// ReconciliationUsecase aligns the local transfer projection with the
// provider's view. The provider is authoritative for status: reconciliation
// may skip intermediate states but never rewrites a terminal row, and writing
// the same state twice is a no-op, so replaying a job is always safe.
type ReconciliationUsecase struct {
	executorFactory        executor_factory.ExecutorFactory
	transfersRepository    reconciliationStorage
	merchantsRepository    reconciliationMerchantsRepository
	silaTransferRepository reconciliationProviderRepository
	taskQueueRepository    taskEnqueuer
}

// ReconcileByExternalId refreshes the transfer identified by the provider's
// id. A missing local row is not an error: the row may have been created by
// another process not yet committed, and the periodic sweep will catch it.
func (usecase ReconciliationUsecase) ReconcileByExternalId(
	ctx context.Context,
	externalTransferId string,
) error {
	exec := usecase.executorFactory.NewExecutor()
	logger := utils.LoggerFromContext(ctx)

	transfer, err := usecase.transfersRepository.GetTransferByExternalId(ctx, exec, externalTransferId)
	if err != nil {
		return err
	}
	if transfer == nil {
		logger.WarnContext(ctx, "No local transfer for reconcile task",
			"external_transfer_id", externalTransferId)
		reconciliationsTotal.WithLabelValues(reconcileResultSkipped).Inc()
		return nil
	}

	_, err = usecase.ReconcileTransfer(ctx, *transfer)
	return err
}

// ReconcileTransfer fetches the provider's current view of the transfer and
// applies it to the local row, returning the refreshed transfer.
func (usecase ReconciliationUsecase) ReconcileTransfer(
	ctx context.Context,
	transfer models.Transfer,
) (models.Transfer, error) {
	logger := utils.LoggerFromContext(ctx)

	if transfer.Status.IsTerminal() {
		reconciliationsTotal.WithLabelValues(reconcileResultSkipped).Inc()
		return transfer, nil
	}
	if !transfer.ExternalTransferId.Valid {
		reconciliationsTotal.WithLabelValues(reconcileResultSkipped).Inc()
		return transfer, nil
	}

	creds, err := usecase.credentialsFor(ctx, transfer)
	if err != nil {
		return models.Transfer{}, err
	}

	snapshot, err := usecase.fetchSnapshot(ctx, creds, transfer.ExternalTransferId.String)
	if err != nil {
		return models.Transfer{}, err
	}

	if snapshot.Status == transfer.Status && snapshot.Cancellable == transfer.Cancellable {
		reconciliationsTotal.WithLabelValues(reconcileResultUnchanged).Inc()
		return transfer, nil
	}

	exec := usecase.executorFactory.NewExecutor()
	affected, err := usecase.transfersRepository.UpdateTransferStatus(
		ctx, exec, transfer.Id, snapshot.Status, snapshot.Cancellable)
	if err != nil {
		return models.Transfer{}, err
	}
	if affected > 0 {
		logger.InfoContext(ctx, "Reconciled transfer",
			"transfer_id", transfer.Id,
			"from_status", transfer.Status,
			"to_status", snapshot.Status)
		reconciliationsTotal.WithLabelValues(reconcileResultUpdated).Inc()
	} else {
		reconciliationsTotal.WithLabelValues(reconcileResultUnchanged).Inc()
	}

	transfer.Status = snapshot.Status
	transfer.Cancellable = snapshot.Cancellable
	return transfer, nil
}

// ReconcilePending enqueues a reconcile task for every transfer still
// awaiting a terminal status. Called by the periodic sweep job.
func (usecase ReconciliationUsecase) ReconcilePending(ctx context.Context) error {
	exec := usecase.executorFactory.NewExecutor()

	transfers, err := usecase.transfersRepository.ListNonTerminalTransfers(ctx, exec)
	if err != nil {
		return err
	}
	if len(transfers) == 0 {
		return nil
	}

	externalTransferIds := make([]string, 0, len(transfers))
	for _, transfer := range transfers {
		externalTransferIds = append(externalTransferIds, transfer.ExternalTransferId.String)
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "Sweeping non-terminal transfers",
		"count", len(externalTransferIds))
	return usecase.taskQueueRepository.EnqueueReconcileTransferTaskMany(ctx, externalTransferIds)
}

// fetchSnapshot retries the provider read a few times: the fetch is
// idempotent, unlike the writes elsewhere in the engine.
func (usecase ReconciliationUsecase) fetchSnapshot(
	ctx context.Context,
	creds models.ProviderCredentials,
	externalTransferId string,
) (models.TransferSnapshot, error) {
	start := time.Now()
	defer func() {
		providerCallDuration.WithLabelValues("get_transfer").Observe(time.Since(start).Seconds())
	}()

	return retry.DoWithData(
		func() (models.TransferSnapshot, error) {
			return usecase.silaTransferRepository.GetTransfer(ctx, creds, externalTransferId)
		},
		retry.Context(ctx),
		retry.Attempts(nbFetchRetries),
		retry.Delay(fetchRetryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// 4xx answers will not change on retry
			var providerError models.ProviderError
			if errors.As(err, &providerError) {
				return providerError.StatusCode >= 500
			}
			return true
		}),
	)
}

func (usecase ReconciliationUsecase) credentialsFor(
	ctx context.Context,
	transfer models.Transfer,
) (models.ProviderCredentials, error) {
	if !transfer.MerchantId.Valid {
		return models.ProviderCredentials{}, nil
	}

	exec := usecase.executorFactory.NewExecutor()
	merchant, err := usecase.merchantsRepository.GetMerchantById(ctx, exec, transfer.MerchantId.String)
	if err != nil {
		return models.ProviderCredentials{}, err
	}
	if !merchant.HasOwnCredentials() {
		return models.ProviderCredentials{}, nil
	}
	return models.ProviderCredentials{
		AccessRef: merchant.AccessRef.String,
		AppId:     merchant.ProviderAppId,
		AppKey:    merchant.ProviderAppKey,
	}, nil
}
