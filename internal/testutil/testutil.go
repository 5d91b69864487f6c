// Package testutil provides test utilities and helpers.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"pathways/internal/config"
)

// Backend is a fake recommendation service recording every request it gets.
type Backend struct {
	*httptest.Server

	mu             sync.Mutex
	submitResponse string
	saveResponse   string
	submits        []map[string]any
	saves          []map[string]any
	saveGate       chan struct{}
}

// NewBackend starts a fake backend that answers success with no
// recommendations until told otherwise. It is closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		submitResponse: `{"success":true,"recommendations":[]}`,
		saveResponse:   `{"success":true}`,
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	data, _ := io.ReadAll(r.Body)
	json.Unmarshal(data, &body)

	b.mu.Lock()
	switch r.URL.Path {
	case "/submit_pathway":
		b.submits = append(b.submits, body)
		response := b.submitResponse
		b.mu.Unlock()
		io.WriteString(w, response)
	case "/save_recommendation":
		b.saves = append(b.saves, body)
		response, gate := b.saveResponse, b.saveGate
		b.mu.Unlock()
		if gate != nil {
			<-gate
		}
		io.WriteString(w, response)
	default:
		b.mu.Unlock()
		io.WriteString(w, "ok")
	}
}

// HoldSaves makes save requests wait until release is called. Release is
// also called when the test ends.
func (b *Backend) HoldSaves(t *testing.T) (release func()) {
	gate := make(chan struct{})
	b.mu.Lock()
	b.saveGate = gate
	b.mu.Unlock()

	var once sync.Once
	release = func() { once.Do(func() { close(gate) }) }
	t.Cleanup(release)
	return release
}

// RespondToSubmit sets the raw JSON answer to submissions.
func (b *Backend) RespondToSubmit(raw string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitResponse = raw
}

// RespondToSave sets the raw JSON answer to saves.
func (b *Backend) RespondToSave(raw string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saveResponse = raw
}

// Submits returns the decoded submission bodies received so far.
func (b *Backend) Submits() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.submits...)
}

// Saves returns the decoded save bodies received so far.
func (b *Backend) Saves() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.saves...)
}

// Config returns a development configuration pointed at backendURL.
func Config(backendURL string) *config.Config {
	return &config.Config{
		Env:                "development",
		BaseURL:            "http://localhost:3000",
		UpstreamURL:        backendURL,
		UpstreamSubmitPath: "/submit_pathway",
		UpstreamSavePath:   "/save_recommendation",
		UpstreamHealthPath: "/",
		UpstreamTimeout:    5 * time.Second,
		SessionSecret:      "test-secret-that-is-long-enough-for-production",
		SessionIdleTimeout: time.Hour,
		SiteTitle:          "Pathways",
		SiteFooter:         "Pathways footer",
		DashboardPath:      "/dashboard",
	}
}

// Client sends requests through app.Test and replays the cookies it is given,
// so consecutive requests share one session.
type Client struct {
	t   *testing.T
	app *fiber.App

	mu      sync.Mutex
	cookies map[string]*http.Cookie
}

// NewClient creates a client for app.
func NewClient(t *testing.T, app *fiber.App) *Client {
	return &Client{t: t, app: app, cookies: map[string]*http.Cookie{}}
}

// Do sends one request and returns the response with its body read.
// Requests marked htmx carry the HX-Request header.
func (c *Client) Do(method, target, contentType, body string, htmx bool) (*http.Response, string) {
	c.t.Helper()

	resp, err := c.app.Test(c.newRequest(method, target, contentType, body, htmx))
	if err != nil {
		c.t.Fatalf("%s %s failed: %v", method, target, err)
	}
	c.keepCookies(resp)

	data, _ := io.ReadAll(resp.Body)
	return resp, string(data)
}

// Async sends a bodiless request in the background without a test timeout.
// The channel yields the response body once the request completes.
func (c *Client) Async(method, target string, htmx bool) <-chan string {
	req := c.newRequest(method, target, "", "", htmx)
	done := make(chan string, 1)

	go func() {
		resp, err := c.app.Test(req, fiber.TestConfig{Timeout: 0})
		if err != nil {
			c.t.Errorf("%s %s failed: %v", method, target, err)
			done <- ""
			return
		}
		c.keepCookies(resp)
		data, _ := io.ReadAll(resp.Body)
		done <- string(data)
	}()
	return done
}

func (c *Client) newRequest(method, target, contentType, body string, htmx bool) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	return req
}

func (c *Client) keepCookies(resp *http.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cookie := range resp.Cookies() {
		c.cookies[cookie.Name] = cookie
	}
}

// Form posts url-encoded form data as HTMX.
func (c *Client) Form(target, form string) (*http.Response, string) {
	return c.Do(http.MethodPost, target, "application/x-www-form-urlencoded", form, true)
}

// JSON sends a JSON body.
func (c *Client) JSON(method, target, body string) (*http.Response, string) {
	return c.Do(method, target, "application/json", body, false)
}

// HTMX sends a bodiless HTMX request.
func (c *Client) HTMX(method, target string) (*http.Response, string) {
	return c.Do(method, target, "", "", true)
}
