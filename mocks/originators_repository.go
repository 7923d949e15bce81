package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/repositories"
)

type OriginatorsRepository struct {
	mock.Mock
}

func (m *OriginatorsRepository) GetRegistrationByMerchantId(ctx context.Context, exec repositories.Executor,
	merchantId string,
) (*models.OriginatorRegistration, error) {
	args := m.Called(ctx, exec, merchantId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OriginatorRegistration), args.Error(1)
}

func (m *OriginatorsRepository) CreateRegistration(ctx context.Context, exec repositories.Executor,
	input models.OriginatorRegistrationCreateInput,
) error {
	args := m.Called(ctx, exec, input)
	return args.Error(0)
}

func (m *OriginatorsRepository) CompleteRegistration(ctx context.Context, exec repositories.Executor,
	registrationId string, originatorId string,
) error {
	args := m.Called(ctx, exec, registrationId, originatorId)
	return args.Error(0)
}

func (m *OriginatorsRepository) FailRegistration(ctx context.Context, exec repositories.Executor,
	registrationId string,
) error {
	args := m.Called(ctx, exec, registrationId)
	return args.Error(0)
}
