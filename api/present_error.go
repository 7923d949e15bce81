package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/shifi/transfers-backend/dto"
	"github.com/shifi/transfers-backend/models"
	"github.com/shifi/transfers-backend/utils"
)

func presentError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	ctx := c.Request.Context()
	logger := utils.LoggerFromContext(ctx)

	var providerError models.ProviderError

	switch {
	case errors.Is(err, models.ErrNotConfigured):
		// full detail goes to the logs, the caller only gets a generic answer
		logger.ErrorContext(ctx, "Configuration error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{
			Message:   "the platform is not configured for this operation",
			ErrorCode: dto.NotConfigured,
		})

	case errors.Is(err, models.ErrTransferAlreadyExists):
		c.JSON(http.StatusConflict, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: dto.TransferAlreadyExists,
		})

	case errors.Is(err, models.ErrTransferNotCancellable):
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{
			Message:   err.Error(),
			ErrorCode: dto.TransferNotCancellable,
		})

	case errors.Is(err, models.BadParameterError):
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error()})

	case errors.Is(err, models.UnAuthorizedError):
		c.JSON(http.StatusUnauthorized, dto.APIErrorResponse{Message: err.Error()})

	case errors.Is(err, models.ForbiddenError):
		c.JSON(http.StatusForbidden, dto.APIErrorResponse{Message: err.Error()})

	case errors.Is(err, models.NotFoundError):
		c.JSON(http.StatusNotFound, dto.APIErrorResponse{Message: err.Error()})

	case errors.Is(err, models.ConflictError):
		c.JSON(http.StatusConflict, dto.APIErrorResponse{Message: err.Error()})

	case errors.Is(err, models.ErrUnknownProviderDecision),
		errors.Is(err, models.ErrUnknownProviderStatus):
		logger.ErrorContext(ctx, "Unrecognized provider response", "error", err.Error())
		c.JSON(http.StatusBadGateway, dto.APIErrorResponse{
			Message:   "the payment provider returned an unrecognized response",
			ErrorCode: dto.UnknownProviderResponse,
		})

	case errors.As(err, &providerError):
		// raw provider payload is kept in the audit log only
		logger.ErrorContext(ctx, "Provider rejected the call",
			"operation", providerError.Operation,
			"status_code", providerError.StatusCode,
			"raw_body", string(providerError.RawBody))
		c.JSON(http.StatusBadGateway, dto.APIErrorResponse{
			Message:   "the payment provider rejected the call",
			ErrorCode: dto.ProviderRejected,
		})

	default:
		logger.ErrorContext(ctx, "Unexpected error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{Message: "internal error"})
	}
	return true
}
