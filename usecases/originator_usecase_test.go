package usecases

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shifi/transfers-backend/mocks"
	"github.com/shifi/transfers-backend/models"
)

type OriginatorUsecaseTestSuite struct {
	suite.Suite
	executorFactory        *mocks.ExecutorFactory
	executor               *mocks.Executor
	originatorsRepository  *mocks.OriginatorsRepository
	merchantsRepository    *mocks.MerchantsRepository
	silaTransferRepository *mocks.SilaTransferRepository

	ctx        context.Context
	merchantId string
	merchant   models.Merchant
}

func (suite *OriginatorUsecaseTestSuite) SetupTest() {
	suite.executorFactory = new(mocks.ExecutorFactory)
	suite.executor = new(mocks.Executor)
	suite.originatorsRepository = new(mocks.OriginatorsRepository)
	suite.merchantsRepository = new(mocks.MerchantsRepository)
	suite.silaTransferRepository = new(mocks.SilaTransferRepository)

	suite.ctx = context.Background()
	suite.merchantId = "merchant-1"
	suite.merchant = models.Merchant{
		Id:        suite.merchantId,
		LegalName: "Acme Supplies LLC",
		Email:     null.StringFrom("finance@acme.example"),
		Website:   null.StringFrom("https://acme.example"),
		AccessRef: null.StringFrom("sandbox.merchant-token"),
	}

	suite.executorFactory.On("NewExecutor").Return(suite.executor)
}

func (suite *OriginatorUsecaseTestSuite) makeUsecase() OriginatorUsecase {
	return OriginatorUsecase{
		executorFactory:        suite.executorFactory,
		originatorsRepository:  suite.originatorsRepository,
		merchantsRepository:    suite.merchantsRepository,
		silaTransferRepository: suite.silaTransferRepository,
	}
}

func (suite *OriginatorUsecaseTestSuite) AssertExpectations() {
	t := suite.T()
	suite.executorFactory.AssertExpectations(t)
	suite.originatorsRepository.AssertExpectations(t)
	suite.merchantsRepository.AssertExpectations(t)
	suite.silaTransferRepository.AssertExpectations(t)
}

func (suite *OriginatorUsecaseTestSuite) Test_EnsureOriginator_first_registration() {
	suite.originatorsRepository.On("GetRegistrationByMerchantId", suite.ctx, suite.executor, suite.merchantId).
		Return(nil, nil)
	suite.merchantsRepository.On("GetMerchantById", suite.ctx, suite.executor, suite.merchantId).
		Return(suite.merchant, nil)
	suite.originatorsRepository.On("CreateRegistration", suite.ctx, suite.executor,
		mock.MatchedBy(func(input models.OriginatorRegistrationCreateInput) bool {
			return input.MerchantId == suite.merchantId &&
				input.OnboardingStatus == models.OnboardingPending &&
				input.Id != ""
		})).
		Return(nil)
	suite.silaTransferRepository.On("RegisterOriginator", suite.ctx,
		models.ProviderCredentials{AccessRef: "sandbox.merchant-token"},
		mock.MatchedBy(func(profile models.OriginatorProfile) bool {
			return profile.MerchantId == suite.merchantId &&
				profile.Email == "finance@acme.example"
		})).
		Return("orig-42", json.RawMessage(`{"originator_id":"orig-42"}`), nil)
	suite.originatorsRepository.On("CompleteRegistration", suite.ctx, suite.executor,
		mock.Anything, "orig-42").Return(nil)

	registration, err := suite.makeUsecase().EnsureOriginator(suite.ctx, suite.merchantId)

	suite.NoError(err)
	suite.Equal(models.OnboardingCompleted, registration.OnboardingStatus)
	suite.Equal("orig-42", registration.OriginatorId.String)
	suite.AssertExpectations()
}

func (suite *OriginatorUsecaseTestSuite) Test_EnsureOriginator_idempotent_when_completed() {
	existing := &models.OriginatorRegistration{
		Id:               "registration-1",
		MerchantId:       suite.merchantId,
		OriginatorId:     null.StringFrom("orig-42"),
		OnboardingStatus: models.OnboardingCompleted,
	}

	suite.originatorsRepository.On("GetRegistrationByMerchantId", suite.ctx, suite.executor, suite.merchantId).
		Return(existing, nil)

	registration, err := suite.makeUsecase().EnsureOriginator(suite.ctx, suite.merchantId)

	suite.NoError(err)
	suite.Equal(*existing, registration)
	suite.silaTransferRepository.AssertNotCalled(suite.T(), "RegisterOriginator")
	suite.originatorsRepository.AssertNotCalled(suite.T(), "CreateRegistration")
	suite.AssertExpectations()
}

func (suite *OriginatorUsecaseTestSuite) Test_EnsureOriginator_retries_failed_registration() {
	existing := &models.OriginatorRegistration{
		Id:               "registration-1",
		MerchantId:       suite.merchantId,
		OnboardingStatus: models.OnboardingFailed,
	}

	suite.originatorsRepository.On("GetRegistrationByMerchantId", suite.ctx, suite.executor, suite.merchantId).
		Return(existing, nil)
	suite.merchantsRepository.On("GetMerchantById", suite.ctx, suite.executor, suite.merchantId).
		Return(suite.merchant, nil)
	suite.silaTransferRepository.On("RegisterOriginator", suite.ctx, mock.Anything, mock.Anything).
		Return("orig-42", json.RawMessage(`{"originator_id":"orig-42"}`), nil)
	suite.originatorsRepository.On("CompleteRegistration", suite.ctx, suite.executor,
		"registration-1", "orig-42").Return(nil)

	registration, err := suite.makeUsecase().EnsureOriginator(suite.ctx, suite.merchantId)

	suite.NoError(err)
	suite.Equal(models.OnboardingCompleted, registration.OnboardingStatus)
	suite.originatorsRepository.AssertNotCalled(suite.T(), "CreateRegistration")
	suite.AssertExpectations()
}

func (suite *OriginatorUsecaseTestSuite) Test_EnsureOriginator_provider_error_marks_failed() {
	providerErr := models.ProviderError{
		Operation:  "register_originator",
		StatusCode: 422,
		RawBody:    []byte(`{"error":"invalid business profile"}`),
	}

	suite.originatorsRepository.On("GetRegistrationByMerchantId", suite.ctx, suite.executor, suite.merchantId).
		Return(nil, nil)
	suite.merchantsRepository.On("GetMerchantById", suite.ctx, suite.executor, suite.merchantId).
		Return(suite.merchant, nil)
	suite.originatorsRepository.On("CreateRegistration", suite.ctx, suite.executor, mock.Anything).
		Return(nil)
	suite.silaTransferRepository.On("RegisterOriginator", suite.ctx, mock.Anything, mock.Anything).
		Return("", nil, providerErr)
	suite.originatorsRepository.On("FailRegistration", suite.ctx, suite.executor, mock.Anything).
		Return(nil)

	_, err := suite.makeUsecase().EnsureOriginator(suite.ctx, suite.merchantId)

	var got models.ProviderError
	suite.ErrorAs(err, &got)
	suite.Equal(422, got.StatusCode)
	suite.originatorsRepository.AssertNotCalled(suite.T(), "CompleteRegistration")
	suite.AssertExpectations()
}

func (suite *OriginatorUsecaseTestSuite) Test_EnsureOriginator_storage_error() {
	suite.originatorsRepository.On("GetRegistrationByMerchantId", suite.ctx, suite.executor, suite.merchantId).
		Return(nil, errors.New("connection reset"))

	_, err := suite.makeUsecase().EnsureOriginator(suite.ctx, suite.merchantId)

	suite.Error(err)
	suite.AssertExpectations()
}

func Test_buildOriginatorProfile_fallbacks(t *testing.T) {
	profile := buildOriginatorProfile(models.Merchant{
		Id:        "merchant-1",
		LegalName: "Acme Supplies LLC",
	})

	if profile.Email != "merchant-merchant-1@shifi.io" {
		t.Errorf("unexpected fallback email %q", profile.Email)
	}
	if profile.Website != "https://shifi.io" {
		t.Errorf("unexpected fallback website %q", profile.Website)
	}
}

func TestOriginatorUsecase(t *testing.T) {
	suite.Run(t, new(OriginatorUsecaseTestSuite))
}
