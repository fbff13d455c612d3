package connection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/dns"
)

// Path of the credential endpoint relative to the API base URL.
const Path = "/api/connection-details"

var (
	ErrBadStatus    = errors.New("unexpected status from connection-details endpoint")
	ErrInvalidBody  = errors.New("invalid connection-details body")
	ErrMissingToken = errors.New("connection details carry no token")
)

const maxBodySize = 64 * 1024

// Client fetches connection details from the local endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the endpoint rooted at baseURL.
func NewClient(baseURL string) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dns.DialContext

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Transport: transport, Timeout: 30 * time.Second},
	}
}

// NewClientWithHTTP creates a client using the supplied HTTP client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, http: hc}
}

// Fetch requests a credential scoped to roomID. The room identifier is sent
// as-is; only query escaping is applied.
func (c *Client) Fetch(ctx context.Context, roomID string) (*Details, error) {
	u, err := url.Parse(c.baseURL + Path)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	q := u.Query()
	q.Set("room", roomID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var details Details
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&details); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if details.Token() == "" {
		return nil, ErrMissingToken
	}

	return &details, nil
}
