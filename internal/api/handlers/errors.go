package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"virtual-energy-trader/internal/api/models"
	"virtual-energy-trader/internal/market"
)

// writeError maps a simulation error to an HTTP status and a typed body.
// Validation failures are 400, transition failures 409, missing data 503.
func writeError(c *gin.Context, err error) {
	code := market.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case market.CodeInvalidHour, market.CodeInvalidPrice, market.CodeInvalidQuantity,
		market.CodeInvalidSide, market.CodeBiddingClosed, market.CodeBatchTooLarge:
		status = http.StatusBadRequest
	case market.CodeInvalidTransition, market.CodeNothingToClear, market.CodeNotInitialized:
		status = http.StatusConflict
	case market.CodeDataUnavailable:
		status = http.StatusServiceUnavailable
	}
	body := models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    string(code),
			Message: err.Error(),
		},
	}
	if code == "" {
		body.Error.Code = "INTERNAL_ERROR"
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, code, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: msg},
	})
}
