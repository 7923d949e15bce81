package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/repositories"
	"github.com/shifi/transfers-backend/usecases/executor_factory"
	"github.com/shifi/transfers-backend/utils"
)

type originatorStorage interface {
	GetRegistrationByMerchantId(ctx context.Context, exec repositories.Executor,
		merchantId string) (*models.OriginatorRegistration, error)
	CreateRegistration(ctx context.Context, exec repositories.Executor,
		input models.OriginatorRegistrationCreateInput) error
	CompleteRegistration(ctx context.Context, exec repositories.Executor,
		registrationId string, originatorId string) error
	FailRegistration(ctx context.Context, exec repositories.Executor,
		registrationId string) error
}

type originatorProviderRepository interface {
	RegisterOriginator(ctx context.Context, creds models.ProviderCredentials,
		profile models.OriginatorProfile) (string, json.RawMessage, error)
}

type originatorMerchantsRepository interface {
	GetMerchantById(ctx context.Context, exec repositories.Executor,
		merchantId string) (models.Merchant, error)
}

// OriginatorUsecase registers merchants as payment originators under the
// platform's umbrella account. Registration is idempotent per merchant: a
// completed registration is returned as is, a pending or failed one is
// retried against the provider.
type OriginatorUsecase struct {
	executorFactory        executor_factory.ExecutorFactory
	originatorsRepository  originatorStorage
	merchantsRepository    originatorMerchantsRepository
	silaTransferRepository originatorProviderRepository
}

func (usecase OriginatorUsecase) EnsureOriginator(
	ctx context.Context,
	merchantId string,
) (models.OriginatorRegistration, error) {
	exec := usecase.executorFactory.NewExecutor()
	logger := utils.LoggerFromContext(ctx)

	registration, err := usecase.originatorsRepository.GetRegistrationByMerchantId(ctx, exec, merchantId)
	if err != nil {
		return models.OriginatorRegistration{}, err
	}
	if registration != nil && registration.OnboardingStatus == models.OnboardingCompleted {
		return *registration, nil
	}

	merchant, err := usecase.merchantsRepository.GetMerchantById(ctx, exec, merchantId)
	if err != nil {
		return models.OriginatorRegistration{}, err
	}

	if registration == nil {
		created := models.OriginatorRegistrationCreateInput{
			Id:               uuid.NewString(),
			MerchantId:       merchantId,
			OnboardingStatus: models.OnboardingPending,
		}
		if err := usecase.originatorsRepository.CreateRegistration(ctx, exec, created); err != nil {
			return models.OriginatorRegistration{}, err
		}
		registration = &models.OriginatorRegistration{
			Id:               created.Id,
			MerchantId:       merchantId,
			OnboardingStatus: models.OnboardingPending,
		}
	}

	profile := buildOriginatorProfile(merchant)

	start := time.Now()
	originatorId, rawPayload, err := usecase.silaTransferRepository.RegisterOriginator(
		ctx, models.ProviderCredentials{AccessRef: merchant.AccessRef.String}, profile)
	providerCallDuration.WithLabelValues("register_originator").Observe(time.Since(start).Seconds())
	if err != nil {
		if failErr := usecase.originatorsRepository.FailRegistration(ctx, exec, registration.Id); failErr != nil {
			logger.ErrorContext(ctx, "Could not mark originator registration as failed",
				"registration_id", registration.Id, "error", failErr.Error())
		}
		return models.OriginatorRegistration{}, err
	}

	if err := usecase.originatorsRepository.CompleteRegistration(
		ctx, exec, registration.Id, originatorId); err != nil {
		return models.OriginatorRegistration{}, err
	}

	logger.InfoContext(ctx, "Registered merchant as originator",
		"merchant_id", merchantId, "originator_id", originatorId)

	registration.OriginatorId = null.StringFrom(originatorId)
	registration.OnboardingStatus = models.OnboardingCompleted
	registration.RawPayload = rawPayload
	return *registration, nil
}

// buildOriginatorProfile fills the provider's required fields from the
// merchant record, with deterministic fallbacks so that sparse merchant
// profiles can still be registered.
func buildOriginatorProfile(merchant models.Merchant) models.OriginatorProfile {
	profile := models.OriginatorProfile{
		MerchantId: merchant.Id,
		LegalName:  merchant.LegalName,
		Email:      merchant.Email.String,
		Website:    merchant.Website.String,
		Address:    merchant.Address.String,
		City:       merchant.City.String,
		State:      merchant.State.String,
		PostalCode: merchant.PostalCode.String,
	}
	if profile.Email == "" {
		profile.Email = fmt.Sprintf("merchant-%s@shifi.io", merchant.Id)
	}
	if profile.Website == "" {
		profile.Website = "https://shifi.io"
	}
	return profile
}
