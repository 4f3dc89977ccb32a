package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
)

// CustomerDirectory is the in-memory stand-in for the customer
// service, used by tests and local runs without the upstream
// dependency.
type CustomerDirectory struct {
	mu        sync.RWMutex
	customers map[string]domain.CustomerInfo
}

func NewCustomerDirectory(customers ...domain.CustomerInfo) *CustomerDirectory {
	directory := &CustomerDirectory{customers: make(map[string]domain.CustomerInfo)}
	for _, customer := range customers {
		directory.customers[customer.CustomerID] = customer
	}
	return directory
}

func (d *CustomerDirectory) Put(customer domain.CustomerInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.customers[customer.CustomerID] = customer
}

func (d *CustomerDirectory) FetchCustomer(_ context.Context, customerID string) (domain.CustomerInfo, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	customer, ok := d.customers[strings.TrimSpace(customerID)]
	if !ok {
		return domain.CustomerInfo{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}
