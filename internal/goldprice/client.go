package goldprice

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/simplifymoney/kuberai-backend/internal/httputil"
	"github.com/simplifymoney/kuberai-backend/internal/models"
)

const fetchTimeout = 5 * time.Second

// Client talks to the goldapi.io REST API for XAU/INR spot and history.
// Requests are single-shot with a short timeout; callers fall back to
// the backup snapshot on any error.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// Spot returns the current INR price per gram of 24K gold.
func (c *Client) Spot(ctx context.Context) (float64, error) {
	req, err := c.newRequest(ctx, c.baseURL+"/XAU/INR")
	if err != nil {
		return 0, err
	}

	var data struct {
		PriceGram24K float64 `json:"price_gram_24k"`
	}
	if err := httputil.DoJSON(c.httpClient, req, &data); err != nil {
		return 0, fmt.Errorf("goldapi spot: %w", err)
	}

	if data.PriceGram24K <= 0 {
		return 0, fmt.Errorf("goldapi spot: missing price_gram_24k")
	}
	return data.PriceGram24K, nil
}

// History returns the daily price series for the trailing `days` days.
func (c *Client) History(ctx context.Context, days int) ([]models.PricePoint, error) {
	url := fmt.Sprintf("%s/XAU/INR/history?period=%dd", c.baseURL, days)
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var entries []models.PricePoint
	if err := httputil.DoJSON(c.httpClient, req, &entries); err != nil {
		return nil, fmt.Errorf("goldapi history: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("goldapi history: empty series")
	}

	for i := range entries {
		entries[i].Price = round2(entries[i].Price)
	}
	return entries, nil
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-access-token", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
