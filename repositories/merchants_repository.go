package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/repositories/dbmodels"
)

type MerchantsRepository struct{}

func (repo MerchantsRepository) GetMerchantById(
	ctx context.Context,
	exec Executor,
	merchantId string,
) (models.Merchant, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectMerchantsColumn...).
			From(dbmodels.TABLE_MERCHANTS).
			Where(squirrel.Eq{"id": merchantId}),
		dbmodels.AdaptMerchant,
	)
}
