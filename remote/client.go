package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zeu5/impact-eval/types"
)

var ErrRemote = errors.New("remote environment error")

// Client drives an environment served by Server
type Client struct {
	baseURL string
	client  *http.Client
}

var _ types.Environment = &Client{}

// NewClient creates a client for the server at baseURL, e.g. http://127.0.0.1:8080
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Reset(ctx context.Context) (*types.Observation, error) {
	obs := &types.Observation{}
	if err := c.post(ctx, "/reset", struct{}{}, obs); err != nil {
		return nil, err
	}
	return obs, nil
}

func (c *Client) Step(ctx context.Context, action types.Action) (*types.StepResult, error) {
	result := &types.StepResult{}
	if err := c.post(ctx, "/step", &StepRequest{Actions: action}, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Health checks that the server is reachable
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned %s", ErrRemote, resp.Status)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		msg := struct {
			Error string `json:"error"`
		}{}
		json.Unmarshal(respBody, &msg)
		if resp.StatusCode == http.StatusConflict && strings.Contains(msg.Error, types.ErrEpisodeDone.Error()) {
			return fmt.Errorf("%s: %w", path, types.ErrEpisodeDone)
		}
		return fmt.Errorf("%w: %s returned %d: %s", ErrRemote, path, resp.StatusCode, msg.Error)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrRemote, path, err)
	}
	return nil
}

// Constructor hands out clients for the server at URL. The server starts a
// fresh environment on every reset.
type Constructor struct {
	URL string
}

var _ types.EnvironmentConstructor = &Constructor{}

func (c *Constructor) NewEnvironment() (types.Environment, error) {
	return NewClient(c.URL), nil
}
