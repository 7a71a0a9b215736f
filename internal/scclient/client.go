package scclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/luckyjian/clusterctl/internal/cluster"
)

// APIError is returned for non-2xx responses from the controller.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("controller %s %s returned HTTP %d", e.Method, e.Path, e.StatusCode)
}

// Client is a REST client for the streaming controller admin API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new controller client.
// baseURL example: "http://10.0.0.1:9003"
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListGroups fetches SPU groups (GET /spu-groups). filters restricts the result
// to the given names.
func (c *Client) ListGroups(ctx context.Context, filters []string) ([]cluster.SpuGroup, error) {
	path := "/spu-groups"
	if len(filters) > 0 {
		q := url.Values{}
		for _, f := range filters {
			q.Add("name", f)
		}
		path += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list spu groups: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Method: http.MethodGet, Path: "/spu-groups", StatusCode: resp.StatusCode}
	}

	var groups []cluster.SpuGroup
	if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		return nil, fmt.Errorf("decode spu groups: %w", err)
	}
	return groups, nil
}

// CreateGroup registers a new group (POST /spu-groups).
func (c *Client) CreateGroup(ctx context.Context, g cluster.SpuGroup) error {
	if err := g.Validate(); err != nil {
		return err
	}
	err := c.send(ctx, http.MethodPost, "/spu-groups", g)
	if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusConflict {
		return fmt.Errorf("spu group %q: %w", g.Name, cluster.ErrExists)
	}
	return err
}

// DeleteGroup removes a group (DELETE /spu-groups/{name}).
func (c *Client) DeleteGroup(ctx context.Context, name string) error {
	err := c.send(ctx, http.MethodDelete, "/spu-groups/"+url.PathEscape(name), nil)
	if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("spu group %q: %w", name, cluster.ErrNotFound)
	}
	return err
}

// send issues a request with an optional JSON body and checks for a 2xx response.
func (c *Client) send(ctx context.Context, method, path string, body interface{}) error {
	var bodyReader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}
	return nil
}
