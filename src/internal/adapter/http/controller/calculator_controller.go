package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/commons"
	"github.com/api-sage/fd-account-processor/src/internal/logger"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/service_interfaces"
)

type CalculatorController struct {
	service service_interfaces.CalculatorService
}

func NewCalculatorController(service service_interfaces.CalculatorService) *CalculatorController {
	return &CalculatorController{service: service}
}

func (c *CalculatorController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /calculator/maturity", wrap(http.HandlerFunc(c.calculate), authMiddleware))
}

func (c *CalculatorController) calculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CalculateResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Calculate(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		writeJSON(w, statusFor(response.Message), response)
		logResponse(r, statusFor(response.Message), response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
