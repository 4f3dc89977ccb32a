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

type UserController struct {
	service service_interfaces.UserService
}

func NewUserController(service service_interfaces.UserService) *UserController {
	return &UserController{service: service}
}

func (c *UserController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /users", wrap(http.HandlerFunc(c.createUser), authMiddleware))
	mux.Handle("DELETE /users/{userId}", wrap(http.HandlerFunc(c.deactivateUser), authMiddleware))
}

func (c *UserController) createUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CreateUserResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateUser(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		writeJSON(w, statusFor(response.Message), response)
		logResponse(r, statusFor(response.Message), response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *UserController) deactivateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.DeactivateUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		writeJSON(w, statusFor(response.Message), response)
		logResponse(r, statusFor(response.Message), response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
