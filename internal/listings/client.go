package listings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"exitlens/pkg/models"
)

// Source is implemented by anything able to produce a batch of listing
// records for calibration. The HTTP client below is the real implementation;
// tests substitute their own.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]models.ListingRecord, error)
}

// Client fetches listing records from the paginated acquisitions marketplace
// API. Pagination stops on remaining == 0, on a short page, or at MaxPages,
// whichever comes first; the page cap guarantees termination even if the
// upstream never signals completion.
type Client struct {
	BaseURL  string
	APIKey   string
	HTTP     *http.Client
	PageSize int
	MaxPages int
	Logger   *logrus.Logger
}

// NewClient builds a Client with the standard page limits.
func NewClient(baseURL, apiKey string, logger *logrus.Logger) *Client {
	return &Client{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		PageSize: 100,
		MaxPages: 20,
		Logger:   logger,
	}
}

func (c *Client) Name() string { return "marketplace" }

// FetchAll walks the paginated listings endpoint and returns every record.
func (c *Client) FetchAll(ctx context.Context) ([]models.ListingRecord, error) {
	var all []models.ListingRecord

	offset := 0
	for page := 0; page < c.MaxPages; page++ {
		batch, remaining, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}

		all = append(all, batch...)
		offset += len(batch)

		if remaining == 0 || len(batch) < c.PageSize {
			break
		}
	}

	if c.Logger != nil {
		c.Logger.WithField("listings", len(all)).Info("fetched marketplace listings")
	}
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, offset int) ([]models.ListingRecord, int, error) {
	u, err := url.Parse(c.BaseURL + "/listings")
	if err != nil {
		return nil, 0, fmt.Errorf("listings: parse base url: %w", err)
	}
	q := u.Query()
	q.Set("limit", fmt.Sprintf("%d", c.PageSize))
	q.Set("offset", fmt.Sprintf("%d", offset))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("listings: build request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("listings: request: %w", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("listings: status %d: %s", resp.StatusCode, string(body))
	}

	var page models.ListingsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, 0, fmt.Errorf("listings: decode: %w", err)
	}
	return page.Results, page.Remaining, nil
}
