package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Target is a parsed request URL with the demo client's defaults filled in:
// http scheme, scheme-appropriate port, index.html for a bare path.
type Target struct {
	Scheme   string
	Hostname string
	Port     string
	Path     string
}

func ParseTarget(raw string) (Target, error) {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("invalid url: %w", err)
	}

	t := Target{
		Scheme:   u.Scheme,
		Hostname: u.Hostname(),
		Port:     u.Port(),
	}

	if t.Scheme == "" {
		t.Scheme = "http"
	}
	if t.Hostname == "" {
		t.Hostname = "localhost"
	}
	if t.Port == "" {
		if t.Scheme == "https" {
			t.Port = "443"
		} else {
			t.Port = "80"
		}
	}

	t.Path = strings.TrimPrefix(u.Path, "/")
	if t.Path == "" {
		t.Path = "index.html"
	}

	return t, nil
}

func (t Target) URL() string {
	return fmt.Sprintf("%s://%s:%s/%s", t.Scheme, t.Hostname, t.Port, t.Path)
}

// FetchResult carries what the demo client shows after a GET.
type FetchResult struct {
	Status      int
	ContentType string
	Body        string
}

func (f FetchResult) IsHTML() bool {
	return strings.HasPrefix(f.ContentType, "text/html")
}

// Fetch issues a GET against the parsed target.
func (c *Client) Fetch(ctx context.Context, raw string) (FetchResult, error) {
	target, err := ParseTarget(raw)
	if err != nil {
		return FetchResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL(), nil)
	if err != nil {
		return FetchResult{}, err
	}
	req.Header.Set("User-Agent", "postbox-client")
	req.Header.Set("Accept", "*/*")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return FetchResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchResult{}, err
	}

	return FetchResult{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}, nil
}

// Put uploads a raw body to the parsed target, returning the response status.
func (c *Client) Put(ctx context.Context, raw, body string) (int, error) {
	target, err := ParseTarget(raw)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target.URL(), strings.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "postbox-client")
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
