package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slog"

	"reminders/internal/app/client/config"
	"reminders/internal/domain/reminder"
)

var (
	// ErrUnauthorized means the server refused the shared secret.
	ErrUnauthorized = errors.New("unauthorized: check AUTH_TOKEN")
	// ErrRejected means the server answered with an envelope other than the
	// expected outcome. Store failures come back with a success status, so
	// the message is the only signal.
	ErrRejected = errors.New("request rejected")
)

const userAgent = "remindctl/1.0"

type envelope struct {
	Message string `json:"message"`
}

type httpClient struct {
	client *resty.Client
	log    *slog.Logger
}

func newHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL()).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.Token)

	return &httpClient{
		client: client,
		log:    log.With("component", "http_client"),
	}
}

func (h *httpClient) Health(ctx context.Context) error {
	return h.expect(ctx, http.MethodGet, "/health", nil, "OK")
}

// List fetches the collection at path, e.g. "/reminders". A body that is
// not a list carries the reason in its envelope.
func (h *httpClient) List(ctx context.Context, path string) ([]reminder.Reminder, error) {
	resp, err := h.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var reminders []reminder.Reminder
	if err := json.Unmarshal(resp.Body(), &reminders); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRejected, messageOf(resp))
	}
	if reminders == nil {
		reminders = []reminder.Reminder{}
	}

	return reminders, nil
}

func (h *httpClient) Create(ctx context.Context, path string, r reminder.Reminder) error {
	return h.expect(ctx, http.MethodPost, path, r, "Created reminder")
}

func (h *httpClient) Update(ctx context.Context, path string, r reminder.Reminder) error {
	return h.expect(ctx, http.MethodPut, path, r, "Updated reminder")
}

func (h *httpClient) Delete(ctx context.Context, path, id string) error {
	return h.expect(ctx, http.MethodDelete, path, map[string]string{"id": id}, "Deleted reminder")
}

func (h *httpClient) Bulk(ctx context.Context, path string, reminders []reminder.Reminder) error {
	return h.expect(ctx, http.MethodPatch, path, reminders, "Updated reminder")
}

// expect sends the request and checks the envelope against the message the
// server uses for success.
func (h *httpClient) expect(ctx context.Context, method, path string, body any, want string) error {
	resp, err := h.do(ctx, method, path, body)
	if err != nil {
		return err
	}

	if got := messageOf(resp); got != want {
		return fmt.Errorf("%w: %s", ErrRejected, got)
	}

	return nil
}

func (h *httpClient) do(ctx context.Context, method, path string, body any) (*resty.Response, error) {
	req := h.client.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	h.log.Debug("sending request", "method", method, "path", path)

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	h.log.Debug("got response", "status", resp.StatusCode(), "body", resp.String())

	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.IsError():
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode(), messageOf(resp))
	}

	return resp, nil
}

func messageOf(resp *resty.Response) string {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil || env.Message == "" {
		return resp.String()
	}
	return env.Message
}
