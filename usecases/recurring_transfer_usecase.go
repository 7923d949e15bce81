package usecases

import (
	"context"
	"time"

	"github.com/guregu/null/v5"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/repositories"
	"github.com/shifi/transfers-backend/usecases/executor_factory"
	"github.com/shifi/transfers-backend/utils"
)

type recurringProviderRepository interface {
	CreateRecurringTransfer(ctx context.Context, creds models.ProviderCredentials,
		intent models.RecurringTransferIntent) (models.RecurringTransferHandle, error)
	ListRecurringOccurrences(ctx context.Context, creds models.ProviderCredentials,
		recurringTransferId string) ([]models.RecurringOccurrence, error)
}

type recurringMerchantsRepository interface {
	GetMerchantById(ctx context.Context, exec repositories.Executor,
		merchantId string) (models.Merchant, error)
}

// RecurringTransferUsecase sets up provider-side recurring schedules. The
// schedule and its occurrences live at the provider; nothing is persisted
// locally. Each occurrence lands in the transfers table through the regular
// reconciliation sweep once the provider materializes it.
type RecurringTransferUsecase struct {
	executorFactory        executor_factory.ExecutorFactory
	merchantsRepository    recurringMerchantsRepository
	silaTransferRepository recurringProviderRepository
	authorizationGate      transferAuthorizationGate
}

func (usecase RecurringTransferUsecase) CreateRecurringTransfer(
	ctx context.Context,
	intent models.RecurringTransferIntent,
) (models.RecurringResult, error) {
	if err := intent.Schedule.Validate(); err != nil {
		return models.RecurringResult{}, err
	}

	creds := models.ProviderCredentials{AccessRef: intent.AccessRef}
	if intent.MerchantId.Valid {
		merchant, err := usecase.merchantsRepository.GetMerchantById(
			ctx, usecase.executorFactory.NewExecutor(), intent.MerchantId.String)
		if err != nil {
			return models.RecurringResult{}, err
		}
		if merchant.HasOwnCredentials() {
			creds.AppId = merchant.ProviderAppId
			creds.AppKey = merchant.ProviderAppKey
		}
	}

	// the mandate goes through the same risk gate as a one-off debit
	decision, err := usecase.authorizationGate.AuthorizeTransfer(ctx, creds, models.AuthorizeTransferInput{
		AccessRef:    intent.AccessRef,
		AccountRef:   intent.AccountRef,
		Direction:    models.TransferDirectionDebit,
		AmountCents:  intent.AmountCents,
		Counterparty: intent.Counterparty,
		OriginatorId: intent.OriginatorId,
	})
	if err != nil {
		return models.RecurringResult{}, err
	}
	if !decision.Approved() {
		message := decision.DeclineReason
		if decision.Outcome == models.AuthorizationUserActionRequired {
			message = "additional user action is required before this schedule can be created"
		}
		return models.RecurringResult{Success: false, Message: message}, nil
	}

	start := time.Now()
	handle, err := usecase.silaTransferRepository.CreateRecurringTransfer(ctx, creds, intent)
	providerCallDuration.WithLabelValues("create_recurring_transfer").Observe(time.Since(start).Seconds())
	if err != nil {
		return models.RecurringResult{}, err
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "Created recurring transfer",
		"recurring_transfer_id", handle.RecurringTransferId,
		"frequency", handle.Schedule.Frequency)
	return models.RecurringResult{
		Success:             true,
		RecurringTransferId: handle.RecurringTransferId,
	}, nil
}

func (usecase RecurringTransferUsecase) ListOccurrences(
	ctx context.Context,
	merchantId null.String,
	recurringTransferId string,
) ([]models.RecurringOccurrence, error) {
	creds := models.ProviderCredentials{}
	if merchantId.Valid {
		merchant, err := usecase.merchantsRepository.GetMerchantById(
			ctx, usecase.executorFactory.NewExecutor(), merchantId.String)
		if err != nil {
			return nil, err
		}
		if merchant.HasOwnCredentials() {
			creds = models.ProviderCredentials{
				AccessRef: merchant.AccessRef.String,
				AppId:     merchant.ProviderAppId,
				AppKey:    merchant.ProviderAppKey,
			}
		}
	}
	return usecase.silaTransferRepository.ListRecurringOccurrences(ctx, creds, recurringTransferId)
}
