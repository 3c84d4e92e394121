package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/haymini/hayctl/internal/api"
	"github.com/haymini/hayctl/internal/models"
)

// ExpiredNotice is shown to the user when a previously valid token is
// rejected and the session is torn down.
const ExpiredNotice = "session expired, please sign in again"

// API is the slice of the backend client the session manager depends
// on. *api.Client satisfies it.
type API interface {
	SetToken(token string)
	ClearToken()
	Me(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Logout(ctx context.Context) error
}

// Manager is the single source of truth for "who is logged in". It
// synchronizes the in-memory session with the persisted token store
// and the remote backend, and owns the expiry-redirect policy.
//
// All mutation goes through Initialize, Login, Logout and
// HandleExpiration; the zero states in between are never observable.
type Manager struct {
	api   API
	store TokenStore
	nav   Navigator

	mu     sync.Mutex
	status Status
	token  string
	user   *models.User

	initOnce sync.Once
	navOnce  sync.Once
}

// NewManager creates a session manager in the uninitialized state.
// When the client supports it, the manager registers itself as the
// funnel for 401s seen by any request, so that every expiry converges
// on a single redirect.
func NewManager(client API, store TokenStore, nav Navigator) *Manager {
	m := &Manager{
		api:    client,
		store:  store,
		nav:    nav,
		status: StatusUninitialized,
	}

	if hook, ok := client.(interface{ OnUnauthorized(func()) }); ok {
		hook.OnUnauthorized(m.HandleExpiration)
	}

	return m
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var user *models.User
	if m.user != nil {
		u := *m.user
		user = &u
	}

	return Snapshot{Status: m.status, User: user}
}

// Initialize restores and validates a persisted token. It runs exactly
// once per process; repeat calls are no-ops. All failures are absorbed
// into the resulting status:
//
//   - no persisted token: unauthenticated, no network call
//   - token confirmed (200): authenticated
//   - token rejected (401): the expiry flow, see HandleExpiration
//   - anything else (network, 5xx, malformed, timeout): token cleared,
//     unauthenticated — only a confirmed 401 means "expired", so a
//     flaky network never produces an expiry redirect loop
func (m *Manager) Initialize(ctx context.Context) {
	m.initOnce.Do(func() {
		m.initialize(ctx)
	})
}

func (m *Manager) initialize(ctx context.Context) {
	token, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, ErrTokenNotFound) {
			log.Warn().Err(err).Msg("failed to read persisted token")
		}
		m.mu.Lock()
		m.status = StatusUnauthenticated
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	m.status = StatusValidating
	m.token = token
	m.mu.Unlock()

	m.api.SetToken(token)

	log.Debug().Str("token", api.Fingerprint(token)).Msg("validating persisted token")

	user, err := m.api.Me(ctx)
	switch {
	case err == nil:
		m.mu.Lock()
		m.user = user
		m.status = StatusAuthenticated
		m.mu.Unlock()

		log.Debug().Str("user", user.Username).Str("role", string(user.Role)).Msg("session restored")

	case errors.Is(err, api.ErrUnauthorized):
		m.HandleExpiration()

	default:
		log.Warn().Err(err).Msg("token validation failed, treating as logged out")
		m.teardown(StatusUnauthenticated)
	}
}

// Login exchanges credentials for a session. On success the token is
// persisted and the session becomes authenticated. On any failure
// (bad credentials, network error, malformed response) the prior state
// is left untouched and false is returned.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	result, err := m.api.Login(ctx, email, password)
	if err != nil {
		log.Debug().Err(err).Str("email", email).Msg("login failed")
		return false
	}

	if err := m.store.Save(result.Token); err != nil {
		// The session still works for this process; it just won't
		// survive a restart.
		log.Error().Err(err).Msg("failed to persist token")
	}

	m.api.SetToken(result.Token)

	user := result.User
	m.mu.Lock()
	m.token = result.Token
	m.user = &user
	m.status = StatusAuthenticated
	m.mu.Unlock()

	log.Info().Str("user", user.Username).Str("role", string(user.Role)).Msg("signed in")

	return true
}

// Logout invalidates the session. The remote call is best-effort; the
// local teardown always runs regardless of its outcome, so Logout is
// idempotent and never leaves local state inconsistent.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	defer m.teardown(StatusUnauthenticated)

	if token == "" {
		return
	}

	if err := m.api.Logout(ctx); err != nil {
		log.Warn().Err(err).Msg("remote logout failed, clearing local session anyway")
	}
}

// HandleExpiration is the single entry point for a confirmed 401 from
// anywhere in the application. It is idempotent: once the session is
// expired-redirecting, further calls are no-ops and exactly one
// navigation is triggered.
func (m *Manager) HandleExpiration() {
	m.mu.Lock()
	if m.status == StatusExpiredRedirecting {
		m.mu.Unlock()
		return
	}
	m.status = StatusExpiredRedirecting
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear persisted token")
	}
	m.api.ClearToken()

	log.Info().Msg("session expired, redirecting to login")

	m.navOnce.Do(func() {
		m.nav.NavigateToLogin(ExpiredNotice)
	})
}

// teardown clears all credential state and settles into the given
// status.
func (m *Manager) teardown(status Status) {
	if err := m.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear persisted token")
	}
	m.api.ClearToken()

	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.status = status
	m.mu.Unlock()
}
