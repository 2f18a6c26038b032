// Package dns provisions subdomain records through the Cloudflare v4 API.
package dns

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mdobak/go-xerrors"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

// Client upserts DNS records in a single Cloudflare zone. Every record it
// writes points at the platform's canonical host.
type Client struct {
	// BaseURL is overridable for tests.
	BaseURL string

	apiToken   string
	zoneID     string
	target     string
	httpClient *http.Client
}

func NewClient(apiToken, zoneID, target string) *Client {
	return &Client{
		BaseURL:  defaultBaseURL,
		apiToken: apiToken,
		zoneID:   zoneID,
		target:   target,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// RecordRequest is the Cloudflare DNS record creation payload.
type RecordRequest struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
	Proxied bool   `json:"proxied"`
}

// RecordResponse is the Cloudflare API response envelope.
type RecordResponse struct {
	Success bool `json:"success"`
	Result  struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"result"`
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// SetRecord requests creation of a DNS record of the given type for the
// given subdomain label, pointed at the platform host. Propagation is
// asynchronous on Cloudflare's side; a nil return only means the API
// accepted the request.
func (c *Client) SetRecord(ctx context.Context, recordType, name string) error {
	payload, err := json.Marshal(RecordRequest{
		Type:    recordType,
		Name:    name,
		Content: c.target,
		TTL:     1, // automatic
		Proxied: true,
	})
	if err != nil {
		return xerrors.New(err)
	}

	url := fmt.Sprintf("%s/zones/%s/dns_records", c.BaseURL, c.zoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return xerrors.New(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return xerrors.New(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return xerrors.New(err)
	}

	var recordResp RecordResponse
	if err := json.Unmarshal(body, &recordResp); err != nil {
		return xerrors.Newf("decoding cloudflare response (status %d): %w", resp.StatusCode, err)
	}

	if !recordResp.Success {
		if len(recordResp.Errors) > 0 {
			return xerrors.Newf("cloudflare error %d: %s", recordResp.Errors[0].Code, recordResp.Errors[0].Message)
		}
		return xerrors.Newf("cloudflare request failed with status %d", resp.StatusCode)
	}

	return nil
}
