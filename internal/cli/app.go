// Package cli is the terminal portal: a REPL over the session manager, the
// post lifecycle controller and the accounts service, with routing gates in
// place of the browser's redirects.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/lesvieux/portal/internal/accounts"
	"github.com/lesvieux/portal/internal/api"
	"github.com/lesvieux/portal/internal/config"
	"github.com/lesvieux/portal/internal/logging"
	"github.com/lesvieux/portal/internal/posts"
	"github.com/lesvieux/portal/internal/session"
)

type App struct {
	config   *config.Config
	client   api.Client
	session  *session.Manager
	posts    *posts.Service
	accounts *accounts.Service
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the portal: HTTP client, token store, session manager and the
// two application services. The session manager is both the client's token
// source and its 401 hook, so a stale token observed anywhere drops the
// session exactly once.
func NewApp(cfg *config.Config, log logging.Logger) *App {
	client := api.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, log)
	store := session.NewFileStore(cfg.TokenPath)
	return newApp(cfg, client, store, log)
}

func newApp(cfg *config.Config, client *api.HTTPClient, store session.Store, log logging.Logger) *App {
	sess := session.NewManager(client, store, log)
	client.SetTokenProvider(sess)
	client.SetOnUnauthorized(sess.HandleUnauthorized)

	return &App{
		config:   cfg,
		client:   client,
		session:  sess,
		posts:    posts.NewService(client, log),
		accounts: accounts.NewService(client, sess, log),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.CurrentIdentity() != nil
}

func (a *App) isAdmin() bool {
	identity := a.session.CurrentIdentity()
	return identity != nil && identity.IsAdmin()
}

// requireAuth is the routing gate in front of every protected command. It
// re-verifies a persisted token when needed; failing that, the user lands on
// the login (or, on an uninitialized platform, first-setup) surface — the
// REPL's version of the browser redirect.
func (a *App) requireAuth(ctx context.Context) bool {
	if a.isLoggedIn() {
		return true
	}
	if a.session.Verify(ctx) {
		return true
	}
	if a.session.FirstSetupRequired(ctx) {
		printlnFn("No account exists yet. Run 'init' to create the first account.")
		return false
	}
	printlnFn("Not logged in. Run 'login' first.")
	return false
}

func (a *App) requireAdmin(ctx context.Context) bool {
	if !a.requireAuth(ctx) {
		return false
	}
	if !a.isAdmin() {
		printlnFn("This command requires an admin account.")
		return false
	}
	return true
}
