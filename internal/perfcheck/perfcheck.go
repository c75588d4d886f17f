// Package perfcheck measures response times of the weather-monitor API.
// It probes the read endpoints anonymously and, when a login succeeds,
// walks one location through insert, update, bulk-update and delete so the
// mutating path gets timed too.
package perfcheck

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"
)

// Result is one timed request.
type Result struct {
	Endpoint     string
	Method       string
	StatusCode   int
	ResponseTime time.Duration
	Success      bool
	Err          error
}

type Checker struct {
	baseURL string
	client  *http.Client
	token   string
}

// New creates a Checker for the given base URL (e.g. "http://localhost:8000").
// With insecure set, TLS certificate verification is skipped, which is
// needed against the self-signed pairs the server picks up from its TLS dir.
func New(baseURL string, insecure bool) *Checker {
	transport := &http.Transport{}
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &Checker{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Transport: transport, Timeout: 30 * time.Second},
	}
}

func (c *Checker) do(ctx context.Context, method, endpoint string, body any) (*http.Response, time.Duration, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	return resp, time.Since(start), err
}

// Login authenticates against /api/login and keeps the session token for
// the mutating probes.
func (c *Checker) Login(ctx context.Context, username, password string) error {
	resp, _, err := c.do(ctx, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed: status %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("login response: %w", err)
	}
	c.token = body.Token
	return nil
}

func (c *Checker) check(ctx context.Context, method, endpoint string, body any) Result {
	resp, elapsed, err := c.do(ctx, method, endpoint, body)
	if err != nil {
		return Result{Endpoint: endpoint, Method: method, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return Result{
		Endpoint:     endpoint,
		Method:       method,
		StatusCode:   resp.StatusCode,
		ResponseTime: elapsed,
		Success:      resp.StatusCode < 400,
	}
}

// Run executes the probe sequence and returns one Result per request.
func (c *Checker) Run(ctx context.Context) []Result {
	results := []Result{
		c.check(ctx, http.MethodGet, "/api/locations", nil),
		c.check(ctx, http.MethodGet, "/api/database", nil),
	}

	if c.token == "" {
		return results
	}

	// Authenticated pass: create one probe record, update it, bulk-update
	// it, then delete it so the store ends where it started.
	probe := map[string]any{"name": "perfcheck probe"}
	resp, elapsed, err := c.do(ctx, http.MethodPost, "/api/locations", probe)
	if err != nil {
		results = append(results, Result{Endpoint: "/api/locations", Method: http.MethodPost, Err: err})
		return results
	}

	var stored map[string]any
	decodeErr := json.NewDecoder(resp.Body).Decode(&stored)
	resp.Body.Close()
	results = append(results, Result{
		Endpoint:     "/api/locations",
		Method:       http.MethodPost,
		StatusCode:   resp.StatusCode,
		ResponseTime: elapsed,
		Success:      resp.StatusCode < 400,
	})

	id, _ := stored["id"].(string)
	if decodeErr != nil || id == "" {
		return results
	}

	probe["note"] = "updated"
	results = append(results, c.check(ctx, http.MethodPut, "/api/locations/"+id, probe))

	probe["id"] = id
	results = append(results, c.check(ctx, http.MethodPut, "/api/locations/bulk", []map[string]any{probe}))

	results = append(results, c.check(ctx, http.MethodDelete, "/api/locations/"+id, nil))

	return results
}

// Print writes the results as an aligned table.
func Print(w io.Writer, results []Result) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tENDPOINT\tSTATUS\tTIME\tOK")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t%s\tERROR\t-\tfalse\t(%v)\n", r.Method, r.Endpoint, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%t\n", r.Method, r.Endpoint, r.StatusCode, r.ResponseTime.Round(time.Microsecond), r.Success)
	}
	tw.Flush()
}
