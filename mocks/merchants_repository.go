package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/repositories"
)

type MerchantsRepository struct {
	mock.Mock
}

func (m *MerchantsRepository) GetMerchantById(ctx context.Context, exec repositories.Executor,
	merchantId string,
) (models.Merchant, error) {
	args := m.Called(ctx, exec, merchantId)
	return args.Get(0).(models.Merchant), args.Error(1)
}
