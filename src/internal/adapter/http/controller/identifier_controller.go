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

type IdentifierController struct {
	service service_interfaces.IdentifierService
}

func NewIdentifierController(service service_interfaces.IdentifierService) *IdentifierController {
	return &IdentifierController{service: service}
}

func (c *IdentifierController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /identifiers", wrap(http.HandlerFunc(c.generate), authMiddleware))
	mux.Handle("GET /identifiers/{accountNumber}/validate", wrap(http.HandlerFunc(c.validate), authMiddleware))
}

func (c *IdentifierController) generate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.GenerateIdentifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.GenerateIdentifierResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Generate(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		writeJSON(w, statusFor(response.Message), response)
		logResponse(r, statusFor(response.Message), response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *IdentifierController) validate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ValidateIdentifier(r.Context(), r.PathValue("accountNumber"), r.URL.Query().Get("strategy"))
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		writeJSON(w, statusFor(response.Message), response)
		logResponse(r, statusFor(response.Message), response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
