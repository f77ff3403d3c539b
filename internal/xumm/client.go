// Package xumm is a thin client for the Xaman/XUMM platform payload API.
// It only knows the two calls the gateway fronts: create a signing payload
// and read a payload's status.
package xumm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"xrplutter/gateway/internal/config"
)

// StatusError carries a non-200 vendor reply so handlers can propagate the
// vendor's status code and body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("xumm api returned status %d", e.StatusCode)
}

type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

func NewClient(cfg config.XummConfig) *Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = "https://xumm.app/api/v1/platform"
	}
	return &Client{
		baseURL:   base,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether both API credentials are present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.apiSecret != ""
}

type CreateResult struct {
	PayloadID string
	DeepLink  string
	QRURL     string
}

type createResponse struct {
	UUID string `json:"uuid"`
	Next struct {
		Always string `json:"always"`
		Pushed string `json:"pushed"`
	} `json:"next"`
	Refs struct {
		QRPNG string `json:"qr_png"`
	} `json:"refs"`
}

func (c *Client) CreatePayload(ctx context.Context, txJSON json.RawMessage) (*CreateResult, error) {
	body, err := json.Marshal(map[string]json.RawMessage{"txjson": txJSON})
	if err != nil {
		return nil, fmt.Errorf("encode payload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payload", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	decoded := createResponse{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode payload response: %w", err)
	}
	deepLink := decoded.Next.Always
	if deepLink == "" {
		deepLink = decoded.Next.Pushed
	}
	return &CreateResult{
		PayloadID: decoded.UUID,
		DeepLink:  deepLink,
		QRURL:     decoded.Refs.QRPNG,
	}, nil
}

type PayloadResult struct {
	Opened   bool
	Signed   bool
	Rejected bool
	TxHash   string
	TxBlob   string
}

type statusResponse struct {
	Meta struct {
		Resolved bool `json:"resolved"`
	} `json:"meta"`
	Response struct {
		Opened bool   `json:"opened"`
		Signed bool   `json:"signed"`
		TxID   string `json:"txid"`
		TxBlob string `json:"tx_blob"`
	} `json:"response"`
}

func (c *Client) PayloadStatus(ctx context.Context, id string) (*PayloadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payload/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	decoded := statusResponse{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &PayloadResult{
		Opened:   decoded.Response.Opened,
		Signed:   decoded.Response.Signed,
		Rejected: decoded.Meta.Resolved && !decoded.Response.Signed,
		TxHash:   decoded.Response.TxID,
		TxBlob:   decoded.Response.TxBlob,
	}, nil
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("X-API-Secret", c.apiSecret)
}
