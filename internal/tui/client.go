package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fentz26/taskview/internal/models"
	log "github.com/sirupsen/logrus"
)

// DefaultClientTimeout is the default timeout for API requests.
const DefaultClientTimeout = 10 * time.Second

// FetchError is returned for any failed retrieval. Transport failures carry
// the cause in Err; non-2xx responses carry only the status code.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return "Failed to fetch tasks: " + e.Err.Error()
	}
	return "Failed to fetch tasks"
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client retrieves the task collection from the task API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new API client with timeout. A non-positive timeout
// uses DefaultClientTimeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultClientTimeout
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Endpoint returns the collection URL.
func (c *Client) Endpoint() string { return c.endpoint }

// FetchTasks issues one GET for the full task collection.
func (c *Client) FetchTasks(ctx context.Context) ([]models.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	logger := log.WithFields(log.Fields{
		"endpoint": c.endpoint,
		"status":   resp.StatusCode,
		"elapsed":  time.Since(start).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		logger.Warn("task API returned non-success status")
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	var tasks []models.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("decode response: %w", err)}
	}
	logger.WithField("count", len(tasks)).Debug("fetched tasks")
	return tasks, nil
}

// HealthURL returns the /health URL on the endpoint's host.
func (c *Client) HealthURL() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	u.Path = "/health"
	u.RawQuery = ""
	return u.String(), nil
}

// CheckHealth checks whether the task API daemon answers its health probe.
func (c *Client) CheckHealth(ctx context.Context) (bool, error) {
	healthURL, err := c.HealthURL()
	if err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	var health struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return false, err
	}

	return health.OK, nil
}
