// Package postal resolves a postal code to a partial address using an
// external lookup service.
package postal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pinkbella/storefront/internal/shared"
)

// ErrUnknownPostalCode indicates the lookup service has no entry for the code.
var ErrUnknownPostalCode = errors.New("postal code not found")

// Address is the partial address returned by the lookup service.
type Address struct {
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	Region       string `json:"region"`
}

// Resolver resolves postal codes to partial addresses.
type Resolver interface {
	Resolve(ctx context.Context, code string) (*Address, error)
}

// Client wraps the lookup HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type lookupResponse struct {
	PostalCode   string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	Region       string `json:"uf"`
	NotFound     bool   `json:"erro"`
}

// Resolve looks up a postal code. Codes are cleaned of non-digit
// characters first and must be 8 digits long.
func (c *Client) Resolve(ctx context.Context, code string) (*Address, error) {
	cleaned := CleanCode(code)
	if len(cleaned) != 8 {
		return nil, shared.Validationf("postal code must have 8 digits")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/json/", c.baseURL, cleaned), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, shared.Dependency("postal lookup", "request failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return nil, shared.Dependency("postal lookup", fmt.Sprintf("status %d", resp.StatusCode), nil)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, shared.Dependency("postal lookup", "decode response", err)
	}
	if body.NotFound {
		return nil, ErrUnknownPostalCode
	}

	return &Address{
		PostalCode:   body.PostalCode,
		Street:       body.Street,
		Neighborhood: body.Neighborhood,
		City:         body.City,
		Region:       body.Region,
	}, nil
}

// CleanCode strips everything that is not a digit.
func CleanCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
