package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sethvargo/go-limiter/memorystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
	"golang.org/x/oauth2"

	"reminders/internal/domain/reminder"
	"reminders/internal/infrastructure/identity"
	"reminders/internal/infrastructure/storage/firebase"
)

const secret = "shared-secret"

type storeCall struct {
	Method string
	Path   string
	Record any
}

// fakeStore records every call and answers with canned values.
type fakeStore struct {
	mu    sync.Mutex
	calls []storeCall
	raw   []byte
	err   error
}

func (s *fakeStore) record(method, path string, record any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, storeCall{Method: method, Path: path, Record: record})
	return s.err
}

func (s *fakeStore) Get(_ context.Context, path string) ([]byte, error) {
	if err := s.record(http.MethodGet, path, nil); err != nil {
		return nil, err
	}
	return s.raw, nil
}

func (s *fakeStore) Post(_ context.Context, path string, record any) error {
	return s.record(http.MethodPost, path, record)
}

func (s *fakeStore) Put(_ context.Context, path string, record any) error {
	return s.record(http.MethodPut, path, record)
}

func (s *fakeStore) Delete(_ context.Context, path string) error {
	return s.record(http.MethodDelete, path, nil)
}

func (s *fakeStore) Calls() []storeCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storeCall(nil), s.calls...)
}

func newTestServer(t *testing.T, store reminder.Store, opts Options) *httptest.Server {
	t.Helper()
	if opts.Secret == "" {
		opts.Secret = secret
	}
	srv := httptest.NewServer(New(store, opts, slog.Default()))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body, authorization string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(b)
}

func authorized(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, string) {
	t.Helper()
	return do(t, srv, method, path, body, "Bearer "+secret)
}

func TestAuthGate(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
	}{
		{name: "no header"},
		{name: "wrong secret", authorization: "Bearer nope"},
		{name: "secret without scheme", authorization: secret},
		{name: "wrong scheme", authorization: "Basic " + secret},
		{name: "doubled space", authorization: "Bearer  " + secret},
		{name: "secret as prefix", authorization: "Bearer " + secret + "x"},
		{name: "lowercase scheme", authorization: "bearer " + secret},
	}

	routes := []struct{ method, path, body string }{
		{http.MethodGet, "/reminders", ""},
		{http.MethodPost, "/reminders", `{"title":"x","due":5}`},
		{http.MethodPut, "/reminders", `{"id":"a","title":"x","due":5}`},
		{http.MethodDelete, "/reminders", `{"id":"a"}`},
		{http.MethodPatch, "/reminders", `[]`},
		{http.MethodGet, "/reminders/v2", ""},
		{http.MethodGet, "/health", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			srv := newTestServer(t, store, Options{})

			for _, route := range routes {
				resp, body := do(t, srv, route.method, route.path, route.body, tt.authorization)

				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, route.method+" "+route.path)
				assert.JSONEq(t, `{"message":"Unauthorized"}`, body)
			}

			assert.Empty(t, store.Calls())
		})
	}
}

func TestList(t *testing.T) {
	store := &fakeStore{raw: []byte(`{"abc": {"title": "hello", "due": 1234}}`)}
	srv := newTestServer(t, store, Options{})

	resp, body := authorized(t, srv, http.MethodGet, "/reminders", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	assert.JSONEq(t, `[{"id":"abc","title":"Hello","due":1234,"priority":0,"assignee":null}]`, body)
	assert.Equal(t, []storeCall{{Method: http.MethodGet, Path: "reminders"}}, store.Calls())
}

func TestList_EmptyCollection(t *testing.T) {
	store := &fakeStore{raw: []byte(`null`)}
	srv := newTestServer(t, store, Options{})

	resp, body := authorized(t, srv, http.MethodGet, "/reminders", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)
}

func TestCreate(t *testing.T) {
	store := &fakeStore{}
	srv := newTestServer(t, store, Options{})

	resp, body := authorized(t, srv, http.MethodPost, "/reminders", `{"title":"x","due":5,"priority":1,"assignee":"sam"}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Created reminder"}`, body)

	calls := store.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "reminders", calls[0].Path)

	sent, err := json.Marshal(calls[0].Record)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"x","due":5,"priority":1,"assignee":"sam"}`, string(sent))
}

func TestCreate_WithID(t *testing.T) {
	store := &fakeStore{}
	srv := newTestServer(t, store, Options{})

	resp, body := authorized(t, srv, http.MethodPost, "/reminders", `{"id":"abc","title":"x","due":5}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"message":"reminder must not carry an id field"}`, body)
	assert.Empty(t, store.Calls())
}

func TestUpdate(t *testing.T) {
	store := &fakeStore{}
	srv := newTestServer(t, store, Options{})

	resp, body := authorized(t, srv, http.MethodPut, "/reminders", `{"id":"abc","title":"x","due":5}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Updated reminder"}`, body)

	calls := store.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPut, calls[0].Method)
	assert.Equal(t, "reminders/abc", calls[0].Path)
	assert.Equal(t, reminder.Reminder{Title: "x", Due: 5}, calls[0].Record)
}

func TestMissingID(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
	}{
		{name: "put", method: http.MethodPut, body: `{"title":"x","due":5}`},
		{name: "put with empty id", method: http.MethodPut, body: `{"id":"","title":"x","due":5}`},
		{name: "delete", method: http.MethodDelete, body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			srv := newTestServer(t, store, Options{})

			resp, body := authorized(t, srv, tt.method, "/reminders", tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.JSONEq(t, `{"message":"reminder is missing the id field"}`, body)
			assert.Empty(t, store.Calls())
		})
	}
}

func TestDelete(t *testing.T) {
	store := &fakeStore{}
	srv := newTestServer(t, store, Options{})

	resp, body := authorized(t, srv, http.MethodDelete, "/reminders", `{"id":"abc"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Deleted reminder"}`, body)
	assert.Equal(t, []storeCall{{Method: http.MethodDelete, Path: "reminders/abc"}}, store.Calls())
}

func TestUnknownFieldsAreIgnored(t *testing.T) {
	t.Run("delete with a full record", func(t *testing.T) {
		store := &fakeStore{}
		srv := newTestServer(t, store, Options{})

		resp, body := authorized(t, srv, http.MethodDelete, "/reminders",
			`{"id":"abc","title":"X","due":1,"priority":0,"assignee":null}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"message":"Deleted reminder"}`, body)
		assert.Equal(t, []storeCall{{Method: http.MethodDelete, Path: "reminders/abc"}}, store.Calls())
	})

	t.Run("put with an extra key", func(t *testing.T) {
		store := &fakeStore{}
		srv := newTestServer(t, store, Options{})

		resp, body := authorized(t, srv, http.MethodPut, "/reminders",
			`{"id":"abc","title":"x","due":5,"extra":1}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"message":"Updated reminder"}`, body)

		calls := store.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, reminder.Reminder{Title: "x", Due: 5}, calls[0].Record)
	})

	t.Run("patch with extra keys", func(t *testing.T) {
		store := &fakeStore{}
		srv := newTestServer(t, store, Options{})

		resp, _ := authorized(t, srv, http.MethodPatch, "/reminders",
			`[{"id":"a","title":"a","due":1,"color":"red"}]`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, store.Calls(), 1)
	})
}

func TestBulk(t *testing.T) {
	t.Run("two missing ids", func(t *testing.T) {
		store := &fakeStore{}
		srv := newTestServer(t, store, Options{})

		resp, body := authorized(t, srv, http.MethodPatch, "/reminders",
			`[{"title":"a","due":1},{"title":"b","due":2}]`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"message":"more than one reminder is missing the id field"}`, body)
		assert.Empty(t, store.Calls())
	})

	t.Run("overwrites the collection", func(t *testing.T) {
		store := &fakeStore{}
		srv := newTestServer(t, store, Options{})

		resp, body := authorized(t, srv, http.MethodPatch, "/reminders",
			`[{"id":"a","title":"a","due":1},{"title":"b","due":2}]`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"message":"Updated reminder"}`, body)

		calls := store.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "reminders", calls[0].Path)

		sent, err := json.Marshal(calls[0].Record)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"a": {"title":"a","due":1,"priority":0,"assignee":null},
			"":  {"title":"b","due":2,"priority":0,"assignee":null}
		}`, string(sent))
	})
}

func TestVersionedFamily(t *testing.T) {
	store := &fakeStore{raw: []byte(`{}`)}
	srv := newTestServer(t, store, Options{})

	resp, _ := authorized(t, srv, http.MethodGet, "/reminders/v2", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = authorized(t, srv, http.MethodDelete, "/reminders/v2", `{"id":"abc"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []storeCall{
		{Method: http.MethodGet, Path: "reminders/v2"},
		{Method: http.MethodDelete, Path: "reminders/v2/abc"},
	}, store.Calls())
}

func TestNotFound(t *testing.T) {
	store := &fakeStore{}
	srv := newTestServer(t, store, Options{})

	tests := []struct{ method, path string }{
		{http.MethodGet, "/"},
		{http.MethodGet, "/reminders/abc"},
		{http.MethodGet, "/openapi.json"},
		{http.MethodPost, "/health"},
		{http.MethodGet, "/docs"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, body := do(t, srv, tt.method, tt.path, "", "")

			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.JSONEq(t, `{"message":"Not found"}`, body)
		})
	}

	assert.Empty(t, store.Calls())
}

// Store failures keep the status of the success path; only the message
// tells them apart.
func TestStoreFailureKeepsSuccessStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		method string
		body   string
		status int
	}{
		{name: "get", err: firebase.ErrNotFound, method: http.MethodGet, status: http.StatusOK},
		{name: "post", err: firebase.ErrWrite, method: http.MethodPost, body: `{"title":"x","due":1}`, status: http.StatusCreated},
		{name: "put", err: firebase.ErrWrite, method: http.MethodPut, body: `{"id":"a","title":"x","due":1}`, status: http.StatusOK},
		{name: "delete", err: firebase.ErrDelete, method: http.MethodDelete, body: `{"id":"a"}`, status: http.StatusOK},
		{name: "patch", err: firebase.ErrWrite, method: http.MethodPatch, body: `[]`, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{err: tt.err}
			srv := newTestServer(t, store, Options{})

			resp, body := authorized(t, srv, tt.method, "/reminders", tt.body)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.JSONEq(t, `{"message":"`+tt.err.Error()+`"}`, body)
		})
	}
}

func TestExpiredCredential(t *testing.T) {
	var storeHits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		storeHits.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(upstream.Close)

	clock := clockwork.NewFakeClock()
	var fail atomic.Bool
	provider := identity.Func(func(context.Context) (*oauth2.Token, error) {
		if fail.Load() {
			return nil, errors.New("identity service unreachable")
		}
		return &oauth2.Token{AccessToken: "t", Expiry: clock.Now().Add(time.Hour)}, nil
	})
	cred := firebase.NewCredential(provider, clock, slog.Default())
	store := firebase.New(upstream.URL, cred, slog.Default())
	srv := newTestServer(t, store, Options{})

	resp, _ := authorized(t, srv, http.MethodGet, "/reminders", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.EqualValues(t, 1, storeHits.Load())

	clock.Advance(2 * time.Hour)
	fail.Store(true)

	resp, body := authorized(t, srv, http.MethodGet, "/reminders", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"authentication error"}`, body)

	resp, body = authorized(t, srv, http.MethodPost, "/reminders", `{"title":"x","due":1}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"message":"authentication error"}`, body)

	assert.EqualValues(t, 1, storeHits.Load())
}

func TestMalformedBody(t *testing.T) {
	store := &fakeStore{}
	srv := newTestServer(t, store, Options{})

	for _, body := range []string{`{"title":`, `{"title":"x","due":-1}`, `{"title":"x","due":"soon"}`} {
		resp, got := authorized(t, srv, http.MethodPost, "/reminders", body)

		assert.GreaterOrEqual(t, resp.StatusCode, http.StatusBadRequest, body)
		assert.Less(t, resp.StatusCode, http.StatusInternalServerError, body)

		var envelope map[string]any
		require.NoError(t, json.Unmarshal([]byte(got), &envelope))
		assert.Contains(t, envelope, "message")
		assert.Len(t, envelope, 1)
	}

	assert.Empty(t, store.Calls())
}

func TestRateLimit(t *testing.T) {
	limiter, err := memorystore.New(&memorystore.Config{Tokens: 1, Interval: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { _ = limiter.Close(context.Background()) })

	store := &fakeStore{raw: []byte(`{}`)}
	srv := newTestServer(t, store, Options{Limiter: limiter})

	resp, _ := authorized(t, srv, http.MethodGet, "/reminders", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := authorized(t, srv, http.MethodGet, "/reminders", "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Too many requests"}`, body)

	assert.Len(t, store.Calls(), 1)
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, Options{})

	resp, _ := authorized(t, srv, http.MethodGet, "/health", "")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+secret)
	req.Header.Set("X-Request-ID", "req-1")
	resp, err = srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "req-1", resp.Header.Get("X-Request-ID"))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeStore{}, Options{})

	resp, body := authorized(t, srv, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"OK"}`, body)
}
