package usecases

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/utils"
)

type authorizationGateProviderRepository interface {
	AuthorizeTransfer(
		ctx context.Context,
		creds models.ProviderCredentials,
		input models.AuthorizeTransferInput,
	) (models.AuthorizationDecision, error)
}

// AuthorizationGateUsecase runs the provider's pre-flight risk check before
// any money moves. A decline or a user-action-required answer is a regular
// outcome, not an error; only transport failures and unrecognized decision
// values surface as errors.
type AuthorizationGateUsecase struct {
	silaTransferRepository authorizationGateProviderRepository
}

func (usecase AuthorizationGateUsecase) AuthorizeTransfer(
	ctx context.Context,
	creds models.ProviderCredentials,
	input models.AuthorizeTransferInput,
) (models.AuthorizationDecision, error) {
	logger := utils.LoggerFromContext(ctx)

	if input.AmountCents <= 0 {
		return models.AuthorizationDecision{}, errors.Wrap(models.BadParameterError,
			"transfer amount must be strictly positive")
	}
	if input.AccountRef == "" {
		return models.AuthorizationDecision{}, errors.Wrap(models.BadParameterError,
			"account_ref is required")
	}

	start := time.Now()
	decision, err := usecase.silaTransferRepository.AuthorizeTransfer(ctx, creds, input)
	providerCallDuration.WithLabelValues("authorize_transfer").Observe(time.Since(start).Seconds())
	if err != nil {
		return models.AuthorizationDecision{}, err
	}

	switch decision.Outcome {
	case models.AuthorizationApproved:
		if decision.AuthorizationId == "" {
			return models.AuthorizationDecision{}, errors.New(
				"provider approved the transfer but returned no authorization id")
		}
	case models.AuthorizationDeclined:
		logger.InfoContext(ctx, "Transfer declined by risk check",
			"direction", input.Direction, "decline_reason", decision.DeclineReason)
	case models.AuthorizationUserActionRequired:
		logger.InfoContext(ctx, "Transfer requires user action before it can proceed",
			"direction", input.Direction)
	}
	return decision, nil
}
