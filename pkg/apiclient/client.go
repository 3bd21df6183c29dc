// Copyright 2025 The casaflow Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package apiclient reads the property API's list endpoints through a
// TTL cache so repeated views do not refetch identical payloads.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/casaflow-io/casaflow/pkg/cache"
	"github.com/casaflow-io/casaflow/pkg/upload"
)

// MaintenanceRequest is one reported issue with its photos.
type MaintenanceRequest struct {
	ID           string   `json:"id"`
	ReporterName string   `json:"reporter_name"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	PhotoURLs    []string `json:"photo_urls"`
	Status       string   `json:"status"`
	CreatedAt    string   `json:"created_at"`
}

// Booking is one reservation window.
type Booking struct {
	ID          string `json:"id"`
	UserName    string `json:"user_name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Notes       string `json:"notes"`
	IsCancelled bool   `json:"is_cancelled"`
}

// Client fetches read-mostly lists from the property API. Responses are
// cached by path; writes elsewhere should call Invalidate for the paths
// they touched.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials upload.CredentialSource
	cache       *cache.Cache[[]byte]
}

// New builds a Client caching responses for ttl (<= 0 means the cache
// default of five minutes).
func New(baseURL string, ttl time.Duration, credentials upload.CredentialSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:     baseURL,
		httpClient:  httpClient,
		credentials: credentials,
		cache:       cache.New[[]byte](ttl),
	}
}

// ListMaintenance returns the current maintenance requests.
func (c *Client) ListMaintenance(ctx context.Context) ([]MaintenanceRequest, error) {
	var out []MaintenanceRequest
	if err := c.getJSON(ctx, "/api/maintenance", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBookings returns the current bookings.
func (c *Client) ListBookings(ctx context.Context) ([]Booking, error) {
	var out []Booking
	if err := c.getJSON(ctx, "/api/bookings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Invalidate drops the cached payload for path, forcing the next read to
// hit the network.
func (c *Client) Invalidate(path string) {
	c.cache.Delete(path)
}

// getJSON reads path into v, from the cache when a live entry exists.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	if payload, ok := c.cache.Get(path); ok {
		return json.Unmarshal(payload, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	if c.credentials != nil {
		if cred, ok := c.credentials.Credential(); ok {
			req.Header.Set("Authorization", "Bearer "+cred)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s failed: HTTP %d", path, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response failed: %w", path, err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode %s response failed: %w", path, err)
	}

	c.cache.Set(path, payload)
	return nil
}
