// Package client implements the submission side of the demo: the two POST
// variants against the server, plus plain GET/PUT fetching with an optional
// local preview of HTML responses.
package client

import (
	"errors"
	"net/http"
	"net/url"
	"time"
)

const DefaultEndpoint = "http://localhost:8080/"

var ErrEmptySubmission = errors.New("client: nothing to send")
var ErrMissingField = errors.New("client: required field is empty")

// Doer is the HTTP call dependency; *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Result is the outcome of one submission cycle. Success and failure are both
// ordinary values so the two paths stay symmetric.
type Result struct {
	Status int
	Body   string
	OK     bool
}

type Client struct {
	Endpoint string
	HTTP     Doer
	Panel    StatusPanel
}

func New(endpoint string, panel StatusPanel) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if panel == nil {
		panel = NopPanel{}
	}
	return &Client{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: 5 * time.Second},
		Panel:    panel,
	}
}

// portHint names the port the user should check when a submission fails.
func (c *Client) portHint() string {
	port := "8080"
	if u, err := url.Parse(c.Endpoint); err == nil && u.Port() != "" {
		port = u.Port()
	}
	return "Make sure the server is running on port " + port + "."
}
