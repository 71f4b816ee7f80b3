// Package client implements the calendar-facing side of the session booking
// flow: fetching per-date availability data, reconciling it onto a calendar
// widget as overlays, validating user-proposed time ranges, and submitting
// booking and account mutations.
//
// The widget, notification display and form controls are external
// collaborators expressed as the OverlaySink, Notifier, Form and Modal
// interfaces, so the whole flow runs without a UI in tests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

// CSRFCookieName is the cookie the backend issues and expects echoed in the
// X-CSRFToken header on every mutating request.
const CSRFCookieName = "csrftoken"

// NotifyLevel classifies a user-visible notification.
type NotifyLevel string

const (
	NotifySuccess NotifyLevel = "success"
	NotifyError   NotifyLevel = "error"
	NotifyWarning NotifyLevel = "warning"
	NotifyInfo    NotifyLevel = "info"
)

// Notifier displays dismissible notifications to the user.
type Notifier interface {
	Notify(level NotifyLevel, message string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(NotifyLevel, string) {}

// Navigator performs client-side navigation after mutations that return a
// redirect URL.
type Navigator interface {
	NavigateTo(url string)
}

// Client is the shared HTTP transport for the fetcher and the submitter. It
// owns the cookie jar the CSRF token lives in.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Notify  Notifier
	Nav     Navigator

	// Now is the clock used for past/future checks; defaults to time.Now.
	Now func() time.Time
}

// New builds a client for the given base URL with a fresh cookie jar.
func New(baseURL string, notify Notifier) *Client {
	jar, _ := cookiejar.New(nil)
	if notify == nil {
		notify = NopNotifier{}
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Jar: jar},
		Notify:  notify,
		Now:     time.Now,
	}
}

func (c *Client) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Client) notify(level NotifyLevel, message string) {
	if c.Notify != nil {
		c.Notify.Notify(level, message)
	}
}

// resolve joins a possibly relative endpoint with the client's base URL.
func (c *Client) resolve(endpoint string) (*url.URL, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	return base.ResolveReference(ref), nil
}

// csrfToken reads the CSRF cookie for u from the jar; empty when absent.
func (c *Client) csrfToken(u *url.URL) string {
	if c.HTTP == nil || c.HTTP.Jar == nil {
		return ""
	}
	for _, ck := range c.HTTP.Jar.Cookies(u) {
		if ck.Name == CSRFCookieName {
			return ck.Value
		}
	}
	return ""
}

// postJSON issues a single JSON POST with the CSRF header attached. The
// caller owns the response body.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) (*http.Response, error) {
	u, err := c.resolve(endpoint)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.csrfToken(u); token != "" {
		req.Header.Set("X-CSRFToken", token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return resp, nil
}
