package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/clock"
	"github.com/api-sage/fd-account-processor/src/internal/commons"
	"github.com/api-sage/fd-account-processor/src/internal/logger"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/service_interfaces"
)

// BatchController exposes manual triggers for the three batch steps.
// The scheduler calls the same services; these endpoints exist for
// reruns and operational catch-up.
type BatchController struct {
	accrual        service_interfaces.BatchRunner
	capitalization service_interfaces.BatchRunner
	maturity       service_interfaces.BatchRunner
	batchClock     clock.Clock
}

func NewBatchController(
	accrual service_interfaces.BatchRunner,
	capitalization service_interfaces.BatchRunner,
	maturity service_interfaces.BatchRunner,
	batchClock clock.Clock,
) *BatchController {
	return &BatchController{
		accrual:        accrual,
		capitalization: capitalization,
		maturity:       maturity,
		batchClock:     batchClock,
	}
}

func (c *BatchController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /batch/accrual", wrap(http.HandlerFunc(c.runAccrual), authMiddleware))
	mux.Handle("POST /batch/capitalization", wrap(http.HandlerFunc(c.runCapitalization), authMiddleware))
	mux.Handle("POST /batch/maturity", wrap(http.HandlerFunc(c.runMaturity), authMiddleware))
}

func (c *BatchController) runAccrual(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, "accrual", c.accrual)
}

func (c *BatchController) runCapitalization(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, "capitalization", c.capitalization)
}

func (c *BatchController) runMaturity(w http.ResponseWriter, r *http.Request) {
	c.run(w, r, "maturity", c.maturity)
}

func (c *BatchController) run(w http.ResponseWriter, r *http.Request, name string, runner service_interfaces.BatchRunner) {
	start := time.Now()
	logRequest(r, nil)

	report, err := runner.Run(r.Context())
	if err != nil {
		logError(r, err, logger.Fields{"batch": name})
		response := commons.ErrorResponse[models.BatchRunResponse]("failed to run batch", err.Error())
		writeJSON(w, http.StatusInternalServerError, response)
		logResponse(r, http.StatusInternalServerError, response, start)
		return
	}

	payload := models.BatchRunResponse{
		RunDate:   c.batchClock.Today().Format("2006-01-02"),
		Succeeded: report.Succeeded,
		Skipped:   report.Skipped,
		Errored:   report.Errored,
	}

	response := commons.SuccessResponse(name+" batch completed", payload)
	if report.Errored > 0 {
		response = commons.PartialResponse(name+" batch completed with errors", payload)
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
