// Package client talks to a running errorparty daemon.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aouyang1/errorparty/api/models"
)

const requestTimeout = 15 * time.Second

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// Trigger starts a celebration and returns the resulting state.
func (c *Client) Trigger() (*models.StateResponse, error) {
	var state models.StateResponse
	if err := c.do(http.MethodPost, "/celebrate", &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) State() (*models.StateResponse, error) {
	var state models.StateResponse
	if err := c.do(http.MethodGet, "/state", &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SetPanel opens or closes the panel.
func (c *Client) SetPanel(open bool) (bool, error) {
	state := "closed"
	if open {
		state = "open"
	}
	var resp models.PanelStateResponse
	if err := c.do(http.MethodPut, "/panel/"+state, &resp); err != nil {
		return false, err
	}
	return resp.Open, nil
}

func (c *Client) do(method, path string, out any) error {
	req, err := http.NewRequest(method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error: %s", errResp.Error)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
