package router

import "net/http"

// RouteRegistrar is implemented by every controller. The middleware
// passed in wraps each of the controller's handlers.
type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

// New assembles the API surface. Batch trigger routes take a stricter
// middleware chain than the rest; everything else shares the channel
// auth.
func New(
	accountController RouteRegistrar,
	calculatorController RouteRegistrar,
	identifierController RouteRegistrar,
	userController RouteRegistrar,
	branchController RouteRegistrar,
	batchController RouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
	batchAuthMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if accountController != nil {
		accountController.RegisterRoutes(mux, authMiddleware)
	}
	if calculatorController != nil {
		calculatorController.RegisterRoutes(mux, authMiddleware)
	}
	if identifierController != nil {
		identifierController.RegisterRoutes(mux, authMiddleware)
	}
	if userController != nil {
		userController.RegisterRoutes(mux, authMiddleware)
	}
	if branchController != nil {
		branchController.RegisterRoutes(mux, authMiddleware)
	}
	if batchController != nil {
		batchController.RegisterRoutes(mux, batchAuthMiddleware)
	}

	return mux
}
