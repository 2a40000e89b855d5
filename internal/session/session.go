// Package session owns the portal's view of "who is logged in": it turns a
// persisted bearer token into a verified identity and drives the
// anonymous → first-setup → authenticated transitions.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/lesvieux/portal/internal/api"
	"github.com/lesvieux/portal/internal/logging"
	"github.com/lesvieux/portal/internal/models"
	"github.com/lesvieux/portal/internal/shared"
)

// State is the session's position in the auth lifecycle. States are mutually
// exclusive; the first-setup flag is tracked separately because it gates
// routing, not identity.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateVerifying
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateVerifying:
		return "verifying"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Manager establishes, validates and exposes the current identity.
//
// A decoded identity is never trusted on its own: it becomes current only
// after the token is confirmed live against the API. Any 401 observed
// anywhere in the system funnels back here via HandleUnauthorized.
type Manager struct {
	client api.Client
	store  Store
	log    logging.Logger
	now    func() time.Time

	mu       sync.Mutex
	state    State
	identity *models.Identity

	// firstAccountExists latches true once the platform is known to be
	// initialized (verified login, account creation, or a positive status
	// probe) and never reverts within a session.
	firstAccountExists bool
}

func NewManager(client api.Client, store Store, log logging.Logger) *Manager {
	m := &Manager{client: client, store: store, log: log, now: time.Now}
	if _, ok := store.Get(); ok {
		m.state = StateVerifying
	}
	return m
}

// Token implements api.TokenProvider.
func (m *Manager) Token() string {
	token, _ := m.store.Get()
	return token
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentIdentity is a pure read: it never triggers network I/O and returns
// nil unless the session is verified.
func (m *Manager) CurrentIdentity() *models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated {
		return nil
	}
	return m.identity
}

// Login exchanges credentials for a token, persists it with the one-hour
// cookie lifetime, and verifies it. Empty fields are refused before any
// network call, matching the disabled submit button in the browser UI.
// Login never retries on its own.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	if username == "" {
		return shared.NewValidationError("username not provided")
	}
	if password == "" {
		return shared.NewValidationError("password not provided")
	}

	m.setState(StateAuthenticating)

	token, err := m.client.Login(ctx, username, password)
	if err != nil {
		m.setState(StateAnonymous)
		return err
	}
	if token == "" {
		m.setState(StateAnonymous)
		return shared.NewValidationError("failed to retrieve token")
	}

	if err := m.store.Set(token, m.now().Add(TokenValidity)); err != nil {
		m.setState(StateAnonymous)
		return err
	}

	m.setState(StateVerifying)
	if !m.Verify(ctx) {
		return shared.NewValidationError("failed to verify session")
	}
	return nil
}

// Verify confirms the stored token is decodable and live. A malformed token
// is treated exactly like a failed liveness check: the token is cleared and
// the session drops to anonymous. The caller gets a boolean only; this check
// needs no error detail.
func (m *Manager) Verify(ctx context.Context) bool {
	token, ok := m.store.Get()
	if !ok {
		m.reset()
		return false
	}

	identity, err := models.DecodeIdentity(token)
	if err != nil {
		m.log.Warn(ctx, "clearing malformed token", "err", err)
		m.reset()
		return false
	}

	if err := m.client.Me(ctx); err != nil {
		m.log.Debug(ctx, "token failed liveness check", "err", err)
		m.reset()
		return false
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.identity = identity
	// A live account proves the platform is initialized.
	m.firstAccountExists = true
	m.mu.Unlock()
	return true
}

// Logout clears the token synchronously. Idempotent.
func (m *Manager) Logout() {
	m.reset()
}

// HandleUnauthorized is the global 401 hook: drop the token and revert to
// anonymous, whichever call site observed the 401.
func (m *Manager) HandleUnauthorized() {
	m.reset()
}

// FirstSetupRequired reports whether first-time setup screens take routing
// priority. Once the platform is known initialized this is false for the
// rest of the session, even if the probe is re-run. A failed probe yields
// false: with tri-state knowledge unknown, the login surface stays reachable.
func (m *Manager) FirstSetupRequired(ctx context.Context) bool {
	m.mu.Lock()
	known := m.firstAccountExists
	m.mu.Unlock()
	if known {
		return false
	}

	info, err := m.client.Status(ctx)
	if err != nil {
		m.log.Debug(ctx, "status probe failed", "err", err)
		return false
	}
	if info.Initialized {
		m.mu.Lock()
		m.firstAccountExists = true
		m.mu.Unlock()
		return false
	}
	return true
}

// MarkFirstAccountCreated latches the first-setup flag after an explicit
// account creation signal. Setup screens become unreachable from here on.
func (m *Manager) MarkFirstAccountCreated() {
	m.mu.Lock()
	m.firstAccountExists = true
	m.mu.Unlock()
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Manager) reset() {
	_ = m.store.Clear()
	m.mu.Lock()
	m.state = StateAnonymous
	m.identity = nil
	m.mu.Unlock()
}
