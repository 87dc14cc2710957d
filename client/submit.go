package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const sendingMessage = "Sending request..."
const emptyRawMessage = "Please enter some data to send"

// EncodeFormBody serializes the two demo fields as an URL-encoded body, name
// first, matching what the demo page's form produces.
func EncodeFormBody(name, email string) string {
	return "name=" + url.QueryEscape(name) + "&email=" + url.QueryEscape(email)
}

// SubmitForm sends the structured submission: both fields required, body
// URL-encoded.
func (c *Client) SubmitForm(ctx context.Context, name, email string) (Result, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		c.Panel.Failure("Both name and email are required")
		return Result{}, ErrMissingField
	}

	body := EncodeFormBody(name, email)
	return c.post(ctx, "application/x-www-form-urlencoded", body)
}

// SubmitData sends an already URL-encoded body ("key=val&key2=val2") as a
// form submission, for callers that build their own pairs.
func (c *Client) SubmitData(ctx context.Context, data string) (Result, error) {
	if strings.TrimSpace(data) == "" {
		c.Panel.Failure(emptyRawMessage)
		return Result{}, ErrEmptySubmission
	}

	return c.post(ctx, "application/x-www-form-urlencoded", data)
}

// SubmitRaw sends the free-text submission verbatim as text/plain.
// Whitespace-only input is rejected locally without touching the network.
func (c *Client) SubmitRaw(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		c.Panel.Failure(emptyRawMessage)
		return Result{}, ErrEmptySubmission
	}

	return c.post(ctx, "text/plain", text)
}

func (c *Client) post(ctx context.Context, contentType, body string) (Result, error) {
	c.Panel.Pending(sendingMessage)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, strings.NewReader(body))
	if err != nil {
		c.Panel.Failure(fmt.Sprintf("Error: %v. %s", err, c.portHint()))
		return Result{}, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Panel.Failure(fmt.Sprintf("Error: %v. %s", err, c.portHint()))
		return Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Panel.Failure(fmt.Sprintf("Error reading response: %v. %s", err, c.portHint()))
		return Result{}, err
	}

	result := Result{
		Status: resp.StatusCode,
		Body:   string(respBody),
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
	}

	if result.OK {
		c.Panel.Success(result.Body)
	} else {
		c.Panel.Failure(fmt.Sprintf(
			"Server returned status %d: %s. %s",
			result.Status, strings.TrimSpace(result.Body), c.portHint(),
		))
	}

	return result, nil
}
