package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shifi/transfers-backend/usecases"
)

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router := r.Use(apiKeyMiddleware(conf.ApiKey))

	router.POST("/payments", handleProcessPayment(uc))
	router.POST("/payouts", handleProcessPayout(uc))

	router.GET("/transfers", handleListTransfers(uc))
	router.GET("/transfers/:transfer_id", handleGetTransfer(uc))
	router.POST("/transfers/:transfer_id/cancel", handleCancelTransfer(uc))

	router.POST("/recurring-transfers", handleCreateRecurringTransfer(uc))
	router.GET("/recurring-transfers/:recurring_transfer_id/occurrences",
		handleListRecurringOccurrences(uc))

	router.POST("/merchants/:merchant_id/originator", handleEnsureOriginator(uc))
}
