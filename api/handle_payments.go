package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/shifi/transfers-backend/dto"
	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/usecases"
)

func handleProcessPayment(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.PaymentCreateBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewTransferUsecase()
		result, err := usecase.ProcessPayment(c.Request.Context(), dto.AdaptPaymentIntent(body))
		if presentError(c, err) {
			return
		}

		status := http.StatusCreated
		if !result.Success {
			status = http.StatusOK
		}
		c.JSON(status, dto.AdaptPaymentResultDto(result))
	}
}

func handleProcessPayout(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.PayoutCreateBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewTransferUsecase()
		result, err := usecase.ProcessMerchantPayout(c.Request.Context(), dto.AdaptPayoutIntent(body))
		if presentError(c, err) {
			return
		}

		status := http.StatusCreated
		if !result.Success {
			status = http.StatusOK
		}
		c.JSON(status, dto.AdaptPaymentResultDto(result))
	}
}
