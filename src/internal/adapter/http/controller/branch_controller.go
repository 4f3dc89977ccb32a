package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/fd-account-processor/src/internal/adapter/http/models"
	"github.com/api-sage/fd-account-processor/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/fd-account-processor/src/internal/commons"
	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/usecase/service_interfaces"
)

// BranchController serves the reference catalogs: branches for account
// number generation and FD products for opening requests.
type BranchController struct {
	branchRepo repo_interfaces.BranchRepository
	products   service_interfaces.ProductCatalog
}

func NewBranchController(branchRepo repo_interfaces.BranchRepository, products service_interfaces.ProductCatalog) *BranchController {
	return &BranchController{branchRepo: branchRepo, products: products}
}

func (c *BranchController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("GET /branches", wrap(http.HandlerFunc(c.listBranches), authMiddleware))
	mux.Handle("GET /products", wrap(http.HandlerFunc(c.listProducts), authMiddleware))
}

func (c *BranchController) listBranches(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	branches, err := c.branchRepo.GetAll(r.Context())
	if err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[[]models.BranchResponse]("failed to list branches", "Unable to fetch branches right now")
		writeJSON(w, http.StatusInternalServerError, response)
		logResponse(r, http.StatusInternalServerError, response, start)
		return
	}

	payload := make([]models.BranchResponse, 0, len(branches))
	for _, branch := range branches {
		payload = append(payload, models.BranchResponse{
			BranchCode: branch.BranchCode,
			BranchName: branch.BranchName,
		})
	}

	response := commons.SuccessResponse("branches fetched successfully", payload)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *BranchController) listProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	products, err := c.products.GetAll(r.Context())
	if err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[[]models.ProductResponse]("failed to list products", "Unable to fetch products right now")
		writeJSON(w, http.StatusInternalServerError, response)
		logResponse(r, http.StatusInternalServerError, response, start)
		return
	}

	payload := make([]models.ProductResponse, 0, len(products))
	for _, product := range products {
		entry := models.ProductResponse{
			Code:           product.Code,
			Name:           product.Name,
			MinTermMonths:  product.MinTermMonths,
			MaxTermMonths:  product.MaxTermMonths,
			MinRate:        product.MinRate.String(),
			MaxRate:        product.MaxRate.String(),
			DefaultRate:    product.DefaultRate.String(),
			InterestMethod: string(product.InterestMethod),
			TDSApplicable:  product.TDSApplicable,
			TDSRate:        product.TDSRate.String(),
			PenaltyRate:    product.PenaltyRate.String(),
		}
		if product.InterestMethod == domain.InterestMethodCompound {
			entry.CompoundingFrequency = string(product.DefaultFrequency)
		}
		for _, instruction := range product.AllowedInstructions {
			entry.AllowedInstructions = append(entry.AllowedInstructions, string(instruction))
		}
		payload = append(payload, entry)
	}

	response := commons.SuccessResponse("products fetched successfully", payload)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
