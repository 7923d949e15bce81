package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/guregu/null/v5"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/repositories/dbmodels"
)

type OriginatorsRepository struct{}

func (repo OriginatorsRepository) GetRegistrationByMerchantId(
	ctx context.Context,
	exec Executor,
	merchantId string,
) (*models.OriginatorRegistration, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectOriginatorRegistrationsColumn...).
			From(dbmodels.TABLE_ORIGINATOR_REGISTRATIONS).
			Where(squirrel.Eq{"merchant_id": merchantId}),
		dbmodels.AdaptOriginatorRegistration,
	)
}

func (repo OriginatorsRepository) CreateRegistration(
	ctx context.Context,
	exec Executor,
	input models.OriginatorRegistrationCreateInput,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_ORIGINATOR_REGISTRATIONS).
			Columns(
				"id",
				"merchant_id",
				"originator_id",
				"onboarding_status",
				"raw_payload",
			).
			Values(
				input.Id,
				input.MerchantId,
				input.OriginatorId,
				input.OnboardingStatus,
				input.RawPayload,
			),
	)
}

func (repo OriginatorsRepository) CompleteRegistration(
	ctx context.Context,
	exec Executor,
	registrationId string,
	originatorId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_ORIGINATOR_REGISTRATIONS).
			Set("originator_id", null.StringFrom(originatorId)).
			Set("onboarding_status", models.OnboardingCompleted).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": registrationId}),
	)
}

func (repo OriginatorsRepository) FailRegistration(
	ctx context.Context,
	exec Executor,
	registrationId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_ORIGINATOR_REGISTRATIONS).
			Set("onboarding_status", models.OnboardingFailed).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": registrationId}),
	)
}
