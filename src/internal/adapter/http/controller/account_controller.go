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

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /accounts", wrap(http.HandlerFunc(c.openAccount), authMiddleware))
	mux.Handle("GET /accounts/{accountNumber}", wrap(http.HandlerFunc(c.getAccount), authMiddleware))
	mux.Handle("GET /accounts/{accountNumber}/statement", wrap(http.HandlerFunc(c.getStatement), authMiddleware))
	mux.Handle("GET /accounts/{accountNumber}/premature-withdrawal", wrap(http.HandlerFunc(c.prematureWithdrawal), authMiddleware))
}

func (c *AccountController) openAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.OpenAccount(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		writeJSON(w, statusFor(response.Message), response)
		logResponse(r, statusFor(response.Message), response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetAccount(r.Context(), r.PathValue("accountNumber"))
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		writeJSON(w, statusFor(response.Message), response)
		logResponse(r, statusFor(response.Message), response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) getStatement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetStatement(r.Context(), r.PathValue("accountNumber"))
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		writeJSON(w, statusFor(response.Message), response)
		logResponse(r, statusFor(response.Message), response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) prematureWithdrawal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.PrematureWithdrawalInquiry(r.Context(), r.PathValue("accountNumber"))
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		writeJSON(w, statusFor(response.Message), response)
		logResponse(r, statusFor(response.Message), response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
