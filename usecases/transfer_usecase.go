package usecases

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/guregu/null/v5"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/repositories"
	"github.com/shifi/transfers-backend/usecases/executor_factory"
	"github.com/shifi/transfers-backend/utils"
)

type transferStorage interface {
	CreateTransfer(ctx context.Context, exec repositories.Executor,
		input models.TransferCreateInput) error
	GetTransferById(ctx context.Context, exec repositories.Executor,
		transferId string) (models.Transfer, error)
	GetTransferByExternalId(ctx context.Context, exec repositories.Executor,
		externalTransferId string) (*models.Transfer, error)
	ListTransfers(ctx context.Context, exec repositories.Executor,
		filters models.ListTransfersFilters) ([]models.Transfer, error)
	UpdateTransferStatus(ctx context.Context, exec repositories.Executor, transferId string,
		status models.TransferStatus, cancellable bool) (int64, error)
}

type transferProviderRepository interface {
	CreateTransfer(ctx context.Context, creds models.ProviderCredentials,
		input models.ProviderTransferCreateInput) (models.TransferSnapshot, error)
	CancelTransfer(ctx context.Context, creds models.ProviderCredentials,
		externalTransferId string) (models.TransferSnapshot, error)
}

type transferMerchantsRepository interface {
	GetMerchantById(ctx context.Context, exec repositories.Executor,
		merchantId string) (models.Merchant, error)
}

type transferAuthorizationGate interface {
	AuthorizeTransfer(ctx context.Context, creds models.ProviderCredentials,
		input models.AuthorizeTransferInput) (models.AuthorizationDecision, error)
}

type transferReconciler interface {
	ReconcileTransfer(ctx context.Context, transfer models.Transfer) (models.Transfer, error)
}

// TransferUsecase orchestrates the payment flow: risk authorization first,
// then the provider transfer, then the local record and its reconcile task in
// one transaction. A local row exists if and only if the provider accepted
// the transfer.
type TransferUsecase struct {
	executorFactory        executor_factory.ExecutorFactory
	transactionFactory     executor_factory.TransactionFactory
	transfersRepository    transferStorage
	merchantsRepository    transferMerchantsRepository
	silaTransferRepository transferProviderRepository
	taskQueueRepository    repositories.TaskQueueRepository
	authorizationGate      transferAuthorizationGate
	reconciler             transferReconciler
	settlementAccountRef   string
}

func (usecase TransferUsecase) ProcessPayment(
	ctx context.Context,
	intent models.PaymentIntent,
) (models.PaymentResult, error) {
	creds := models.ProviderCredentials{AccessRef: intent.AccessRef}
	if intent.MerchantId.Valid {
		merchant, err := usecase.merchantsRepository.GetMerchantById(
			ctx, usecase.executorFactory.NewExecutor(), intent.MerchantId.String)
		if err != nil {
			return models.PaymentResult{}, err
		}
		if merchant.HasOwnCredentials() {
			creds.AppId = merchant.ProviderAppId
			creds.AppKey = merchant.ProviderAppKey
		}
	}

	decision, err := usecase.authorizationGate.AuthorizeTransfer(ctx, creds, models.AuthorizeTransferInput{
		AccessRef:    intent.AccessRef,
		AccountRef:   intent.AccountRef,
		Direction:    models.TransferDirectionDebit,
		AmountCents:  intent.AmountCents,
		Counterparty: intent.Counterparty,
		OriginatorId: intent.OriginatorId,
	})
	if err != nil {
		paymentsTotal.WithLabelValues(string(models.TransferDirectionDebit), outcomeError).Inc()
		return models.PaymentResult{}, err
	}
	if !decision.Approved() {
		return usecase.declinedResult(models.TransferDirectionDebit, decision), nil
	}

	return usecase.executeTransfer(ctx, creds, models.ProviderTransferCreateInput{
		AuthorizationId: decision.AuthorizationId,
		AccountRef:      intent.AccountRef,
		Direction:       models.TransferDirectionDebit,
		AmountCents:     intent.AmountCents,
		Description:     intent.Description,
		OriginatorId:    intent.OriginatorId,
	}, transferRecord{
		ContractId: null.StringFrom(intent.ContractId),
		MerchantId: intent.MerchantId,
		Metadata:   intent.Metadata,
	})
}

// ProcessMerchantPayout pushes funds from the platform settlement account to
// the merchant's linked bank account. Both accounts are required
// configuration: a missing one fails the attempt outright, no defaults.
func (usecase TransferUsecase) ProcessMerchantPayout(
	ctx context.Context,
	intent models.PayoutIntent,
) (models.PaymentResult, error) {
	merchant, err := usecase.merchantsRepository.GetMerchantById(
		ctx, usecase.executorFactory.NewExecutor(), intent.MerchantId)
	if err != nil {
		return models.PaymentResult{}, err
	}
	if !merchant.LinkedAccountRef.Valid {
		return models.PaymentResult{}, errors.WithDetailf(models.ErrMerchantNotLinked,
			"merchant %s has no linked bank account", merchant.Id)
	}
	if usecase.settlementAccountRef == "" {
		return models.PaymentResult{}, models.ErrNoSettlementAccount
	}

	// Payouts always run under the platform credentials: the settlement
	// account belongs to the platform, not to the merchant.
	creds := models.ProviderCredentials{}

	decision, err := usecase.authorizationGate.AuthorizeTransfer(ctx, creds, models.AuthorizeTransferInput{
		AccountRef:  usecase.settlementAccountRef,
		Direction:   models.TransferDirectionCredit,
		AmountCents: intent.AmountCents,
		Counterparty: models.CounterpartyIdentity{
			LegalName: merchant.LegalName,
			Email:     merchant.Email.String,
		},
	})
	if err != nil {
		paymentsTotal.WithLabelValues(string(models.TransferDirectionCredit), outcomeError).Inc()
		return models.PaymentResult{}, err
	}
	if !decision.Approved() {
		return usecase.declinedResult(models.TransferDirectionCredit, decision), nil
	}

	return usecase.executeTransfer(ctx, creds, models.ProviderTransferCreateInput{
		AuthorizationId:       decision.AuthorizationId,
		AccountRef:            usecase.settlementAccountRef,
		DestinationAccountRef: merchant.LinkedAccountRef,
		Direction:             models.TransferDirectionCredit,
		AmountCents:           intent.AmountCents,
		Description:           intent.Description,
	}, transferRecord{
		ContractId: null.StringFrom(intent.ContractId),
		MerchantId: null.StringFrom(intent.MerchantId),
		Metadata:   intent.Metadata,
	})
}

// transferRecord carries the local-only attributes of the transfer row.
type transferRecord struct {
	ContractId null.String
	MerchantId null.String
	Metadata   map[string]string
}

func (usecase TransferUsecase) executeTransfer(
	ctx context.Context,
	creds models.ProviderCredentials,
	input models.ProviderTransferCreateInput,
	record transferRecord,
) (models.PaymentResult, error) {
	logger := utils.LoggerFromContext(ctx)

	start := time.Now()
	snapshot, err := usecase.silaTransferRepository.CreateTransfer(ctx, creds, input)
	providerCallDuration.WithLabelValues("create_transfer").Observe(time.Since(start).Seconds())
	if err != nil {
		paymentsTotal.WithLabelValues(string(input.Direction), outcomeError).Inc()
		return models.PaymentResult{}, err
	}
	logger.DebugContext(ctx, "Provider accepted transfer",
		"external_transfer_id", snapshot.ExternalTransferId,
		"raw_payload", string(snapshot.RawPayload))

	transferId, err := executor_factory.TransactionReturnValue(ctx, usecase.transactionFactory,
		func(tx repositories.Transaction) (string, error) {
			transferId := uuid.NewString()
			if err := usecase.transfersRepository.CreateTransfer(ctx, tx, models.TransferCreateInput{
				Id:                 transferId,
				ExternalTransferId: snapshot.ExternalTransferId,
				AuthorizationId:    input.AuthorizationId,
				Direction:          input.Direction,
				AmountCents:        input.AmountCents,
				Status:             snapshot.Status,
				RoutedToShifi:      !input.OriginatorId.Valid,
				ContractId:         record.ContractId,
				MerchantId:         record.MerchantId,
				Description:        input.Description,
				Metadata:           record.Metadata,
				Cancellable:        snapshot.Cancellable,
			}); err != nil {
				return "", err
			}
			if err := usecase.taskQueueRepository.EnqueueReconcileTransferTask(
				ctx, tx, snapshot.ExternalTransferId); err != nil {
				return "", err
			}
			return transferId, nil
		})
	if err != nil {
		return models.PaymentResult{}, err
	}

	paymentsTotal.WithLabelValues(string(input.Direction), outcomeProcessed).Inc()
	return models.PaymentResult{
		Success:    true,
		TransferId: transferId,
		Status:     snapshot.Status,
	}, nil
}

func (usecase TransferUsecase) declinedResult(
	direction models.TransferDirection,
	decision models.AuthorizationDecision,
) models.PaymentResult {
	if decision.Outcome == models.AuthorizationUserActionRequired {
		paymentsTotal.WithLabelValues(string(direction), outcomeUserActionRequired).Inc()
		return models.PaymentResult{
			Success: false,
			Message: "additional user action is required before this transfer can proceed",
		}
	}
	paymentsTotal.WithLabelValues(string(direction), outcomeDeclined).Inc()
	message := decision.DeclineReason
	if message == "" {
		message = "transfer declined by risk check"
	}
	return models.PaymentResult{
		Success: false,
		Message: message,
	}
}

// findTransfer resolves either a local transfer id or the provider's
// external id, so status checks can be keyed on whichever id the caller has.
func (usecase TransferUsecase) findTransfer(
	ctx context.Context,
	exec repositories.Executor,
	transferId string,
) (models.Transfer, error) {
	transfer, err := usecase.transfersRepository.GetTransferById(ctx, exec, transferId)
	if err == nil || !errors.Is(err, models.NotFoundError) {
		return transfer, err
	}

	byExternalId, err := usecase.transfersRepository.GetTransferByExternalId(ctx, exec, transferId)
	if err != nil {
		return models.Transfer{}, err
	}
	if byExternalId == nil {
		return models.Transfer{}, errors.WithDetailf(models.NotFoundError,
			"no transfer with id or external id %s", transferId)
	}
	return *byExternalId, nil
}

// GetTransfer returns the transfer refreshed against the provider. When the
// provider is unreachable the last known local state is returned: a read
// should not fail because the provider is down.
func (usecase TransferUsecase) GetTransfer(
	ctx context.Context,
	transferId string,
) (models.Transfer, error) {
	exec := usecase.executorFactory.NewExecutor()

	transfer, err := usecase.findTransfer(ctx, exec, transferId)
	if err != nil {
		return models.Transfer{}, err
	}

	reconciled, err := usecase.reconciler.ReconcileTransfer(ctx, transfer)
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"Could not refresh transfer from provider, returning last known state",
			"transfer_id", transferId, "error", err.Error())
		return transfer, nil
	}
	return reconciled, nil
}

func (usecase TransferUsecase) ListTransfers(
	ctx context.Context,
	filters models.ListTransfersFilters,
) ([]models.Transfer, error) {
	return usecase.transfersRepository.ListTransfers(
		ctx, usecase.executorFactory.NewExecutor(), filters)
}

// CancelTransfer attempts to cancel at the provider. It returns false without
// calling the provider when the last known state already rules out
// cancellation. A provider refusal (the transfer was picked up for settlement
// since the last poll) also returns false after refreshing the local row.
func (usecase TransferUsecase) CancelTransfer(
	ctx context.Context,
	transferId string,
) (bool, error) {
	exec := usecase.executorFactory.NewExecutor()

	transfer, err := usecase.findTransfer(ctx, exec, transferId)
	if err != nil {
		return false, err
	}
	if transfer.Status.IsTerminal() || !transfer.Cancellable || !transfer.ExternalTransferId.Valid {
		return false, nil
	}
	if !transfer.Status.CanTransitionTo(models.TransferStatusCancelled) {
		return false, nil
	}

	creds, err := usecase.merchantCredentials(ctx, transfer.MerchantId)
	if err != nil {
		return false, err
	}

	start := time.Now()
	snapshot, err := usecase.silaTransferRepository.CancelTransfer(
		ctx, creds, transfer.ExternalTransferId.String)
	providerCallDuration.WithLabelValues("cancel_transfer").Observe(time.Since(start).Seconds())
	if err != nil {
		var providerError models.ProviderError
		if errors.As(err, &providerError) && providerError.StatusCode < 500 {
			// the provider already handed the transfer off; pick up its
			// current state instead of failing
			if _, reconcileErr := usecase.reconciler.ReconcileTransfer(ctx, transfer); reconcileErr != nil {
				return false, reconcileErr
			}
			return false, nil
		}
		return false, err
	}

	if _, err := usecase.transfersRepository.UpdateTransferStatus(
		ctx, exec, transfer.Id, snapshot.Status, snapshot.Cancellable); err != nil {
		return false, err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "Cancelled transfer",
		"transfer_id", transfer.Id, "status", snapshot.Status)
	return true, nil
}

func (usecase TransferUsecase) merchantCredentials(
	ctx context.Context,
	merchantId null.String,
) (models.ProviderCredentials, error) {
	if !merchantId.Valid {
		return models.ProviderCredentials{}, nil
	}

	merchant, err := usecase.merchantsRepository.GetMerchantById(
		ctx, usecase.executorFactory.NewExecutor(), merchantId.String)
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
