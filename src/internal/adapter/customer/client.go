package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/api-sage/fd-account-processor/src/internal/domain"
	"github.com/api-sage/fd-account-processor/src/internal/logger"
)

const requestTimeout = 5 * time.Second

// Client fetches customer records from the customer service over
// HTTP. A 404 maps to domain.ErrCustomerNotFound; anything else
// surfaces as a transport error.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type customerPayload struct {
	CustomerID     string `json:"customerId"`
	FullName       string `json:"fullName"`
	Classification string `json:"classification"`
	Active         bool   `json:"active"`
}

type customerEnvelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    *customerPayload `json:"data"`
}

func (c *Client) FetchCustomer(ctx context.Context, customerID string) (domain.CustomerInfo, error) {
	endpoint := fmt.Sprintf("%s/api/v1/customers/%s", c.baseURL, url.PathEscape(strings.TrimSpace(customerID)))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.CustomerInfo{}, fmt.Errorf("build customer request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		logger.Error("customer client request failed", err, logger.Fields{
			"customerId": customerID,
		})
		return domain.CustomerInfo{}, fmt.Errorf("fetch customer %s: %w", customerID, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return domain.CustomerInfo{}, domain.ErrCustomerNotFound
	}
	if response.StatusCode != http.StatusOK {
		return domain.CustomerInfo{}, fmt.Errorf("customer service returned status %d for %s", response.StatusCode, customerID)
	}

	var envelope customerEnvelope
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return domain.CustomerInfo{}, fmt.Errorf("decode customer response: %w", err)
	}
	if envelope.Data == nil {
		return domain.CustomerInfo{}, domain.ErrCustomerNotFound
	}

	return domain.CustomerInfo{
		CustomerID:     envelope.Data.CustomerID,
		FullName:       envelope.Data.FullName,
		Classification: envelope.Data.Classification,
		Active:         envelope.Data.Active,
	}, nil
}
