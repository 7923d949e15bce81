package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/guregu/null/v5"

	"github.com/shifi/transfers-backend/dto"
	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/pure_utils"
	"github.com/shifi/transfers-backend/usecases"
)

func handleCreateRecurringTransfer(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var body dto.RecurringTransferCreateBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		intent, err := dto.AdaptRecurringTransferIntent(body)
		if presentError(c, err) {
			return
		}

		usecase := uc.NewRecurringTransferUsecase()
		result, err := usecase.CreateRecurringTransfer(c.Request.Context(), intent)
		if presentError(c, err) {
			return
		}

		status := http.StatusCreated
		if !result.Success {
			status = http.StatusOK
		}
		c.JSON(status, dto.AdaptRecurringResultDto(result))
	}
}

func handleListRecurringOccurrences(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		recurringTransferId := c.Param("recurring_transfer_id")

		var merchantId null.String
		if q := c.Query("merchant_id"); q != "" {
			merchantId = null.StringFrom(q)
		}

		usecase := uc.NewRecurringTransferUsecase()
		occurrences, err := usecase.ListOccurrences(c.Request.Context(), merchantId, recurringTransferId)
		if presentError(c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"occurrences": pure_utils.Map(occurrences, dto.AdaptRecurringOccurrenceDto),
		})
	}
}
