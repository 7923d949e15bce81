package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shifi/transfers-backend/dto"
	"github.com/shifi/transfers-backend/usecases"
)

func handleEnsureOriginator(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		merchantId := c.Param("merchant_id")
		usecase := uc.NewOriginatorUsecase()

		registration, err := usecase.EnsureOriginator(c.Request.Context(), merchantId)
		if presentError(c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"registration": dto.AdaptOriginatorRegistrationDto(registration),
		})
	}
}
