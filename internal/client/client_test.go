package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
)

// startServer runs a handler on an httptest listener and returns the
// host/port to dial.
func startServer(t *testing.T, handler http.Handler) (string, int, func()) {
	t.Helper()

	ts := httptest.NewServer(handler)

	u, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("parse test server url: %v", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatalf("parse test server port: %v", err)
	}

	return u.Hostname(), port, ts.Close
}

func TestPreRegisterWireFormat(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	host, port, cleanup := startServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		// The wire field is spelled "registeration_token".
		w.Write([]byte(`{"registeration_token": "TOK123"}`))
	}))
	defer cleanup()

	token, err := New().PreRegister(context.Background(), host, port, "alice")
	if err != nil {
		t.Fatalf("PreRegister() error: %v", err)
	}

	if gotPath != "/users/pre-register" {
		t.Errorf("expected path /users/pre-register, got %s", gotPath)
	}
	if gotBody["name"] != "alice" {
		t.Errorf(`expected body {"name": "alice"}, got %v`, gotBody)
	}
	if token != "TOK123" {
		t.Errorf("expected token TOK123, got %s", token)
	}
}

func TestPreRegisterNon2xx(t *testing.T) {
	host, port, cleanup := startServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "name taken", http.StatusConflict)
	}))
	defer cleanup()

	_, err := New().PreRegister(context.Background(), host, port, "alice")
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestPreRegisterUndecodableBody(t *testing.T) {
	host, port, cleanup := startServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer cleanup()

	_, err := New().PreRegister(context.Background(), host, port, "alice")
	if err == nil {
		t.Fatal("expected error for undecodable body")
	}
}

func TestRegisterWireFormat(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	host, port, cleanup := startServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		// Response is a raw string, not JSON.
		w.Write([]byte("welcome aboard, alice"))
	}))
	defer cleanup()

	result, err := New().Register(context.Background(), host, port, "TOK123")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if gotPath != "/users/register" {
		t.Errorf("expected path /users/register, got %s", gotPath)
	}
	if gotBody["registeration_token"] != "TOK123" {
		t.Errorf(`expected body {"registeration_token": "TOK123"}, got %v`, gotBody)
	}
	if result != "welcome aboard, alice" {
		t.Errorf("expected raw body verbatim, got %q", result)
	}
}

func TestRegisterNon2xx(t *testing.T) {
	host, port, cleanup := startServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown token", http.StatusBadRequest)
	}))
	defer cleanup()

	_, err := New().Register(context.Background(), host, port, "TOK123")
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestNetworkFailure(t *testing.T) {
	host, port, cleanup := startServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	cleanup() // close immediately so the dial fails

	if _, err := New().PreRegister(context.Background(), host, port, "alice"); err == nil {
		t.Fatal("expected error when server is unreachable")
	}
}
