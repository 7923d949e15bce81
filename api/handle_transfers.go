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

func handleListTransfers(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewTransferUsecase()

		filters := models.ListTransfersFilters{}
		if merchantId := c.Query("merchant_id"); merchantId != "" {
			filters.MerchantId = null.StringFrom(merchantId)
		}
		if contractId := c.Query("contract_id"); contractId != "" {
			filters.ContractId = null.StringFrom(contractId)
		}

		transfers, err := usecase.ListTransfers(c.Request.Context(), filters)
		if presentError(c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"transfers": pure_utils.Map(transfers, dto.AdaptTransferDto),
		})
	}
}

func handleGetTransfer(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		transferId := c.Param("transfer_id")
		usecase := uc.NewTransferUsecase()

		transfer, err := usecase.GetTransfer(c.Request.Context(), transferId)
		if presentError(c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"transfer": dto.AdaptTransferDto(transfer)})
	}
}

func handleCancelTransfer(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		transferId := c.Param("transfer_id")
		usecase := uc.NewTransferUsecase()

		cancelled, err := usecase.CancelTransfer(c.Request.Context(), transferId)
		if presentError(c, err) {
			return
		}
		if !cancelled {
			presentError(c, errors.Wrap(models.ErrTransferNotCancellable,
				"the transfer can no longer be cancelled"))
			return
		}

		transfer, err := usecase.GetTransfer(c.Request.Context(), transferId)
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"transfer": dto.AdaptTransferDto(transfer)})
	}
}
