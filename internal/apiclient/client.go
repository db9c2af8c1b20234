// Package apiclient talks to a running AbsenceHub server over its REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"absencehub/internal/models"
	"absencehub/internal/overlap"
	"absencehub/internal/validation"
)

// ErrUnavailable is returned when neither the base URL nor any fallback port
// answers the health check.
var ErrUnavailable = errors.New("absencehub server not reachable")

// APIError is a non-2xx response that is not an overlap conflict.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]FieldError
}

// FieldError mirrors one entry of the server's "fields" map.
type FieldError struct {
	Kind    string `json:"kind"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type envelope struct {
	Success bool                  `json:"success"`
	Data    json.RawMessage       `json:"data"`
	Error   string                `json:"error"`
	Fields  map[string]FieldError `json:"fields"`
}

type Client struct {
	baseURL       string
	fallbackPorts []int
	http          *http.Client
	logger        *logrus.Logger

	mu       sync.Mutex
	resolved string
}

func New(baseURL string, fallbackPorts []int) *Client {
	return &Client{
		baseURL:       baseURL,
		fallbackPorts: fallbackPorts,
		http:          &http.Client{Timeout: 10 * time.Second},
		logger:        logrus.StandardLogger(),
	}
}

// Candidates lists the URLs probed by Locate, base URL first.
func (c *Client) Candidates() []string {
	candidates := []string{c.baseURL}
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Host == "" {
		return candidates
	}
	for _, port := range c.fallbackPorts {
		alt := *u
		alt.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(port))
		if s := alt.String(); s != c.baseURL {
			candidates = append(candidates, s)
		}
	}
	return candidates
}

// Locate returns the first candidate whose /health answers 200 and remembers
// it for later requests.
func (c *Client) Locate(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resolved != "" {
		return c.resolved, nil
	}

	for _, candidate := range c.Candidates() {
		if err := c.probe(ctx, candidate); err != nil {
			c.logger.WithError(err).WithField("url", candidate).Debug("Health probe failed")
			continue
		}
		if candidate != c.baseURL {
			c.logger.WithField("url", candidate).Info("Using fallback API address")
		}
		c.resolved = candidate
		return candidate, nil
	}
	return "", ErrUnavailable
}

func (c *Client) probe(ctx context.Context, base string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned %d", resp.StatusCode)
	}
	return nil
}

// ListAbsences fetches absences; query holds the list filters.
func (c *Client) ListAbsences(ctx context.Context, query url.Values) ([]models.Absence, error) {
	var out []models.Absence
	path := "/api/absences"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// CreateAbsence posts d. An overlap is returned as *overlap.Conflict.
func (c *Client) CreateAbsence(ctx context.Context, d validation.Draft) (*models.Absence, error) {
	var out models.Absence
	if err := c.do(ctx, http.MethodPost, "/api/absences", d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateAbsence asks the server to validate d without saving it.
func (c *Client) ValidateAbsence(ctx context.Context, d validation.Draft) (bool, map[string]FieldError, error) {
	var out struct {
		Valid  bool                  `json:"valid"`
		Fields map[string]FieldError `json:"fields"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/absences/validate", d, &out); err != nil {
		return false, nil, err
	}
	return out.Valid, out.Fields, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	base, err := c.Locate(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 300 || !env.Success {
		if conflict, ok := overlap.Decode(env.Error); ok {
			return conflict
		}
		return &APIError{Status: resp.StatusCode, Message: env.Error, Fields: env.Fields}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data of %s %s: %w", method, path, err)
		}
	}
	return nil
}
