package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesvieux/portal/internal/api"
	"github.com/lesvieux/portal/internal/config"
	"github.com/lesvieux/portal/internal/logging"
	"github.com/lesvieux/portal/internal/models"
	"github.com/lesvieux/portal/internal/session"
)

func mintToken(t *testing.T, username string, role models.Role) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":       int64(1),
		"username": username,
		"role":     int64(role),
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func writeResult(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(map[string]any{"result": v})
}

// newTestApp builds an App against srv with an in-memory token store and
// discarded logs.
func newTestApp(t *testing.T, srv *httptest.Server, token string) *App {
	t.Helper()
	cfg := &config.Config{ServerURL: srv.URL, RequestTimeout: 2 * time.Second}
	log := logging.NewTextLogger(io.Discard, slog.LevelDebug)
	client := api.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, log)
	store := session.NewMemoryStore()
	if token != "" {
		require.NoError(t, store.Set(token, time.Now().Add(time.Hour)))
	}
	return newApp(cfg, client, store, log)
}

func TestProtectedCommandWhileAnonymous(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status":
			writeResult(w, map[string]any{"initialized": true, "version": "1.0"})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	app := newTestApp(t, srv, "")
	out := captureOutput(t)

	app.MyPosts(context.Background())

	assert.Contains(t, strings.Join(*out, "\n"), "Not logged in. Run 'login' first.")
}

func TestProtectedCommandOnUninitializedPlatform(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
		writeResult(w, map[string]any{"initialized": false, "version": "1.0"})
	}))
	defer srv.Close()

	app := newTestApp(t, srv, "")
	out := captureOutput(t)

	app.MyPosts(context.Background())

	assert.Contains(t, strings.Join(*out, "\n"), "Run 'init'")
}

func TestAdminCommandAsAuthor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/me":
			w.WriteHeader(http.StatusOK)
		case "/api/v1/accounts":
			t.Error("account list must not be reachable for authors")
			w.WriteHeader(http.StatusForbidden)
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	app := newTestApp(t, srv, mintToken(t, "alice", models.RoleAuthor))
	out := captureOutput(t)

	app.Accounts(context.Background())

	assert.Contains(t, strings.Join(*out, "\n"), "requires an admin account")
}

func TestAdminCommandAsAdmin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/me":
			w.WriteHeader(http.StatusOK)
		case "/api/v1/accounts":
			writeResult(w, []map[string]any{
				{"id": 1, "username": "root", "role": 1},
				{"id": 2, "username": "alice", "role": 0},
			})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	app := newTestApp(t, srv, mintToken(t, "root", models.RoleAdmin))
	out := captureOutput(t)

	app.Accounts(context.Background())

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "root")
	assert.Contains(t, joined, "alice")
	assert.Contains(t, joined, "admin")
	assert.Contains(t, joined, "author")
}

func TestFeedNeedsNoAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/v1/published_posts":
			writeResult(w, []int64{5})
		case "/api/v1/published_posts/5":
			writeResult(w, map[string]any{
				"id": 5, "title": "Hello", "content": "world",
				"status": "published", "created_at": time.Now().Format(time.RFC3339),
			})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	app := newTestApp(t, srv, "")
	out := captureOutput(t)

	app.Feed(context.Background())

	assert.Contains(t, strings.Join(*out, "\n"), "Hello")
}

func TestStaleTokenDropsSessionOnce(t *testing.T) {
	var meCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/me":
			meCalls++
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
		case "/status":
			writeResult(w, map[string]any{"initialized": true, "version": "1.0"})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	app := newTestApp(t, srv, mintToken(t, "alice", models.RoleAuthor))
	out := captureOutput(t)

	app.MyPosts(context.Background())

	assert.Equal(t, 1, meCalls)
	assert.Nil(t, app.session.CurrentIdentity())
	assert.Contains(t, strings.Join(*out, "\n"), "Not logged in")
}

func TestPromptStatusShowsIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/me" {
			w.WriteHeader(http.StatusOK)
			return
		}
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	defer srv.Close()

	app := newTestApp(t, srv, mintToken(t, "root", models.RoleAdmin))
	require.True(t, app.session.Verify(context.Background()))

	assert.Equal(t, fmt.Sprintf("(%s admin) ", "root"), app.getStatus())
}
