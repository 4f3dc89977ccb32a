package service_interfaces

import (
	"context"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

// CustomerClient fetches customer records from the customer service.
// The engine only validates existence and active status; KYC belongs
// upstream.
type CustomerClient interface {
	FetchCustomer(ctx context.Context, customerID string) (domain.CustomerInfo, error)
}

// ProductCatalog serves FD product definitions: rate bounds, interest
// method, TDS defaults and permitted maturity dispositions.
type ProductCatalog interface {
	GetAll(ctx context.Context) ([]domain.ProductInfo, error)
	FetchProduct(ctx context.Context, code string) (domain.ProductInfo, error)
}
