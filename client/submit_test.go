package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakePanel records every display call so tests can assert on the visible
// outcome of a submission.
type fakePanel struct {
	pending []string
	success []string
	failure []string
}

func (p *fakePanel) Pending(msg string)  { p.pending = append(p.pending, msg) }
func (p *fakePanel) Success(body string) { p.success = append(p.success, body) }
func (p *fakePanel) Failure(msg string)  { p.failure = append(p.failure, msg) }

func (p *fakePanel) lastFailure() string {
	if len(p.failure) == 0 {
		return ""
	}
	return p.failure[len(p.failure)-1]
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(endpoint string, panel StatusPanel) *Client {
	c := New(endpoint, panel)
	return c
}

func TestEncodeFormBodyKeepsFieldOrder(t *testing.T) {
	tests := []struct {
		name, email, want string
	}{
		{"Ada", "ada@example.com", "name=Ada&email=ada%40example.com"},
		{"Ada Lovelace", "a b@c.d", "name=Ada+Lovelace&email=a+b%40c.d"},
		{"a&b=c", "x", "name=a%26b%3Dc&email=x"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := EncodeFormBody(tt.name, tt.email); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubmitFormSendsURLEncodedBody(t *testing.T) {
	var gotBody, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte("OK"))
	}))
	defer server.Close()

	panel := &fakePanel{}
	c := newTestClient(server.URL, panel)

	result, err := c.SubmitForm(context.Background(), "Ada Lovelace", "ada@example.com")
	if err != nil {
		t.Fatalf("SubmitForm failed: %v", err)
	}

	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("unexpected content type: %q", gotContentType)
	}
	if gotBody != "name=Ada+Lovelace&email=ada%40example.com" {
		t.Errorf("unexpected body: %q", gotBody)
	}
	if !result.OK || result.Status != 200 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestSubmitDataSendsBodyAsForm(t *testing.T) {
	var gotBody, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte("OK"))
	}))
	defer server.Close()

	panel := &fakePanel{}
	c := newTestClient(server.URL, panel)

	result, err := c.SubmitData(context.Background(), "city=Paris&country=FR")
	if err != nil {
		t.Fatalf("SubmitData failed: %v", err)
	}

	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("unexpected content type: %q", gotContentType)
	}
	if gotBody != "city=Paris&country=FR" {
		t.Errorf("unexpected body: %q", gotBody)
	}
	if !result.OK {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestSubmitDataRejectsEmptyBody(t *testing.T) {
	panel := &fakePanel{}
	c := newTestClient(DefaultEndpoint, panel)
	c.HTTP = doerFunc(func(r *http.Request) (*http.Response, error) {
		t.Fatal("no request should be sent for an empty body")
		return nil, nil
	})

	_, err := c.SubmitData(context.Background(), "  ")
	if !errors.Is(err, ErrEmptySubmission) {
		t.Fatalf("expected ErrEmptySubmission, got %v", err)
	}
	if len(panel.pending) != 0 {
		t.Error("panel should not show pending for rejected input")
	}
}

func TestSubmitFormRequiresBothFields(t *testing.T) {
	panel := &fakePanel{}
	c := newTestClient("", panel)
	c.HTTP = doerFunc(func(*http.Request) (*http.Response, error) {
		t.Fatal("no network call expected for missing fields")
		return nil, nil
	})

	_, err := c.SubmitForm(context.Background(), "Ada", "   ")
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
	if len(panel.failure) != 1 {
		t.Errorf("expected one failure message, got %v", panel.failure)
	}
	if len(panel.pending) != 0 {
		t.Error("expected no pending state for local validation failure")
	}
}

func TestSubmitRawRejectsEmptyInputWithoutNetworkCall(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t "} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			panel := &fakePanel{}
			c := newTestClient("", panel)
			c.HTTP = doerFunc(func(*http.Request) (*http.Response, error) {
				t.Fatal("no network call expected for empty input")
				return nil, nil
			})

			_, err := c.SubmitRaw(context.Background(), input)
			if !errors.Is(err, ErrEmptySubmission) {
				t.Errorf("expected ErrEmptySubmission, got %v", err)
			}
			if panel.lastFailure() != "Please enter some data to send" {
				t.Errorf("unexpected validation message: %q", panel.lastFailure())
			}
		})
	}
}

func TestSubmitRawSendsVerbatimBody(t *testing.T) {
	var gotBody, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte("stored"))
	}))
	defer server.Close()

	panel := &fakePanel{}
	c := newTestClient(server.URL, panel)

	text := "line one\nline two & <html>"
	result, err := c.SubmitRaw(context.Background(), text)
	if err != nil {
		t.Fatalf("SubmitRaw failed: %v", err)
	}

	if gotContentType != "text/plain" {
		t.Errorf("unexpected content type: %q", gotContentType)
	}
	if gotBody != text {
		t.Errorf("expected verbatim body, got %q", gotBody)
	}
	if !result.OK || result.Body != "stored" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestSuccessfulSubmissionShowsResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	defer server.Close()

	panel := &fakePanel{}
	c := newTestClient(server.URL, panel)

	c.SubmitRaw(context.Background(), "data")

	if len(panel.pending) != 1 || panel.pending[0] != "Sending request..." {
		t.Errorf("expected pending message first, got %v", panel.pending)
	}
	if len(panel.success) != 1 || panel.success[0] != "OK" {
		t.Errorf("expected success with body 'OK', got %v", panel.success)
	}
	if len(panel.failure) != 0 {
		t.Errorf("expected no failure, got %v", panel.failure)
	}
}

func TestServerErrorShowsStatusAndHint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	panel := &fakePanel{}
	c := newTestClient(server.URL, panel)

	result, err := c.SubmitRaw(context.Background(), "data")
	if err != nil {
		t.Fatalf("non-2xx status should not be a transport error: %v", err)
	}

	if result.OK {
		t.Error("expected result not OK for status 500")
	}
	if result.Status != 500 {
		t.Errorf("expected status 500, got %d", result.Status)
	}

	msg := panel.lastFailure()
	if !strings.Contains(msg, "500") {
		t.Errorf("expected failure message to contain status, got %q", msg)
	}
	if !strings.Contains(msg, "Make sure the server is running on port") {
		t.Errorf("expected remediation hint, got %q", msg)
	}
	if len(panel.success) != 0 {
		t.Errorf("expected no success display, got %v", panel.success)
	}
}

func TestConnectionRefusedShowsFailureAndPortHint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	panel := &fakePanel{}
	c := newTestClient(endpoint, panel)

	_, err := c.SubmitRaw(context.Background(), "data")
	if err == nil {
		t.Fatal("expected transport error against closed server")
	}

	msg := panel.lastFailure()
	if !strings.Contains(msg, "connection refused") && !strings.Contains(msg, "connect") {
		t.Errorf("expected failure description, got %q", msg)
	}
	if !strings.Contains(msg, "Make sure the server is running on port") {
		t.Errorf("expected port hint, got %q", msg)
	}
}

func TestDefaultEndpointHintNamesPort8080(t *testing.T) {
	panel := &fakePanel{}
	c := newTestClient("", panel)
	c.HTTP = doerFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})

	c.SubmitRaw(context.Background(), "data")

	if !strings.Contains(panel.lastFailure(), "port 8080") {
		t.Errorf("expected hint to name port 8080, got %q", panel.lastFailure())
	}
}

func TestRepeatedSubmissionsAreIndependent(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, "response %d", calls)
	}))
	defer server.Close()

	panel := &fakePanel{}
	c := newTestClient(server.URL, panel)

	first, err := c.SubmitRaw(context.Background(), "same input")
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.SubmitRaw(context.Background(), "same input")
	if err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("expected two independent request cycles, got %d", calls)
	}
	if first.Body != "response 1" || second.Body != "response 2" {
		t.Errorf("unexpected results: %+v, %+v", first, second)
	}
	if panel.success[len(panel.success)-1] != "response 2" {
		t.Errorf("expected panel to reflect most recent response, got %v", panel.success)
	}
}
