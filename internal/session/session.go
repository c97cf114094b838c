package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"go-recruitart-client/internal/api"
	"go-recruitart-client/internal/models"
	"go-recruitart-client/utils"
)

// DemoToken is the reserved sentinel: when it is the persisted access token,
// Resolve installs a fixed local identity and never touches the network.
const DemoToken = "demo_token"

// ResolutionState tracks startup resolution of a persisted token.
type ResolutionState int

const (
	Resolving ResolutionState = iota
	Resolved
)

// ErrFlowInFlight is returned when a credential flow is started while
// another one is still running. Overlapping flows are rejected rather than
// allowed to race.
var ErrFlowInFlight = errors.New("another credential flow is already in flight")

// Manager is the single owner of authentication state: the current
// identity, both token strings and the durable token store. Everything
// else reads identity through it and never touches tokens directly.
type Manager struct {
	client *api.Client
	store  *Store

	mu       sync.Mutex
	identity *models.Identity
	tokens   models.Tokens
	state    ResolutionState
	lastErr  string
	inFlight bool
	subs     []func(*models.Identity)
}

func NewManager(client *api.Client, store *Store) *Manager {
	return &Manager{
		client: client,
		store:  store,
		state:  Resolving,
	}
}

// Resolve reads the persisted token (once, at startup) and decides who the
// current user is. It never returns an error: any rejection of the token,
// including transport failures, ends in the unauthenticated Resolved state
// with both tokens cleared.
func (m *Manager) Resolve(ctx context.Context) {
	defer m.finishResolve()

	tokens, err := m.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Could not read token store, starting unauthenticated")
		return
	}
	if tokens.Access == "" {
		return
	}

	if tokens.Access == DemoToken {
		// development bypass, no network call
		m.setAuthenticated(demoIdentity(), tokens, false)
		log.Info().Msg("🧪 Demo session active")
		return
	}

	log.Debug().Str("token", utils.RedactToken(tokens.Access)).Msg("🔎 Validating persisted token")
	m.client.UseToken(tokens.Access)
	profile, err := m.client.GetProfile(ctx)
	if err != nil || profile.Identity == nil {
		// token invalid or unreachable: drop it and start logged out
		m.client.UseToken("")
		if clearErr := m.store.Clear(); clearErr != nil {
			log.Warn().Err(clearErr).Msg("⚠️ Failed to clear rejected tokens")
		}
		log.Info().Msg("🔒 Persisted token rejected, starting unauthenticated")
		return
	}
	m.setAuthenticated(profile.Identity, tokens, false)
	log.Info().Str("email", profile.Identity.Email).Msg("✅ Session restored")
}

func (m *Manager) finishResolve() {
	m.mu.Lock()
	m.state = Resolved
	m.mu.Unlock()
}

// Login authenticates with email and password.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.runFlow("Login failed. Please try again.", func() (*api.AuthResult, error) {
		return m.client.Login(ctx, email, password)
	})
}

// Register creates an account. When the backend mints tokens right away the
// session becomes authenticated, otherwise it stays as it was.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) error {
	return m.runFlow("Registration failed.", func() (*api.AuthResult, error) {
		return m.client.Register(ctx, req)
	})
}

// SendOTP requests a one-time code for the given mobile and purpose
// ("login", "register", ...). Never mutates identity.
func (m *Manager) SendOTP(ctx context.Context, mobile, purpose string) error {
	if err := m.beginFlow(); err != nil {
		return err
	}
	defer m.endFlow()

	if err := m.client.SendOTP(ctx, mobile, purpose); err != nil {
		return m.failFlow(err, "Failed to send OTP.")
	}
	return nil
}

// VerifyOTP exchanges a one-time code for a session.
func (m *Manager) VerifyOTP(ctx context.Context, mobile, code, purpose string) error {
	return m.runFlow("Invalid OTP.", func() (*api.AuthResult, error) {
		return m.client.VerifyOTP(ctx, mobile, code, purpose)
	})
}

// ForgotPassword starts a reset flow for an email or mobile number.
func (m *Manager) ForgotPassword(ctx context.Context, emailOrMobile string) error {
	if err := m.beginFlow(); err != nil {
		return err
	}
	defer m.endFlow()

	if err := m.client.ForgotPassword(ctx, emailOrMobile); err != nil {
		return m.failFlow(err, "Failed to start password reset.")
	}
	return nil
}

// ResetPassword completes a reset flow with the received code.
func (m *Manager) ResetPassword(ctx context.Context, mobile, code, newPassword string) error {
	if err := m.beginFlow(); err != nil {
		return err
	}
	defer m.endFlow()

	if err := m.client.ResetPassword(ctx, mobile, code, newPassword); err != nil {
		return m.failFlow(err, "Failed to reset password.")
	}
	return nil
}

// Logout ends the session. The remote invalidation is best-effort: local
// identity and persisted tokens are always cleared, a stuck "logged in"
// client is worse than an orphaned server-side session.
func (m *Manager) Logout(ctx context.Context) {
	if m.IsAuthenticated() && m.accessToken() != DemoToken {
		if err := m.client.Logout(ctx); err != nil {
			log.Warn().Err(err).Msg("⚠️ Remote logout failed, clearing local session anyway")
		}
	}

	m.client.UseToken("")
	if err := m.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("⚠️ Failed to clear token store")
	}

	m.mu.Lock()
	m.identity = nil
	m.tokens = models.Tokens{}
	m.lastErr = ""
	subs := append([]func(*models.Identity){}, m.subs...)
	m.mu.Unlock()
	notify(subs, nil)
	log.Info().Msg("👋 Logged out")
}

// PatchIdentity replaces the in-memory identity after a profile edit that
// already persisted itself remotely. Local only, tokens are untouched.
func (m *Manager) PatchIdentity(identity *models.Identity) {
	m.mu.Lock()
	m.identity = identity
	subs := append([]func(*models.Identity){}, m.subs...)
	m.mu.Unlock()
	notify(subs, identity)
}

// Subscribe registers a callback invoked whenever the identity changes.
func (m *Manager) Subscribe(fn func(*models.Identity)) {
	m.mu.Lock()
	m.subs = append(m.subs, fn)
	m.mu.Unlock()
}

func (m *Manager) Identity() *models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

func (m *Manager) IsAuthenticated() bool {
	return m.Identity() != nil
}

func (m *Manager) State() ResolutionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastError is the user-facing message of the most recent failed flow,
// empty after a success or ClearError.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) ClearError() {
	m.mu.Lock()
	m.lastErr = ""
	m.mu.Unlock()
}

// TokenInfo decodes the current access token's claims for display.
func (m *Manager) TokenInfo() (*TokenInfo, error) {
	tok := m.accessToken()
	if tok == "" {
		return nil, errors.New("no access token held")
	}
	return InspectToken(tok)
}

func (m *Manager) accessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens.Access
}

// runFlow is the shared shape of every identity-mutating credential flow:
// reject overlap, clear the last error, call one endpoint, then either
// install the result or derive and store a failure message.
func (m *Manager) runFlow(fallback string, call func() (*api.AuthResult, error)) error {
	if err := m.beginFlow(); err != nil {
		return err
	}
	defer m.endFlow()

	res, err := call()
	if err != nil {
		return m.failFlow(err, fallback)
	}

	if res.Tokens != nil && res.Identity != nil {
		m.setAuthenticated(res.Identity, *res.Tokens, true)
	}
	return nil
}

func (m *Manager) beginFlow() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight {
		return ErrFlowInFlight
	}
	m.inFlight = true
	m.lastErr = ""
	return nil
}

func (m *Manager) endFlow() {
	m.mu.Lock()
	m.inFlight = false
	m.mu.Unlock()
}

// failFlow stores the derived message and hands the caller an error carrying
// the same text, so forms can react locally without reading shared state.
func (m *Manager) failFlow(err error, fallback string) error {
	msg := api.Message(err, fallback)
	m.mu.Lock()
	m.lastErr = msg
	m.mu.Unlock()
	return errors.New(msg)
}

func (m *Manager) setAuthenticated(identity *models.Identity, tokens models.Tokens, persist bool) {
	if persist {
		if err := m.store.Save(tokens); err != nil {
			log.Warn().Err(err).Msg("⚠️ Failed to persist tokens")
		}
	}
	m.client.UseToken(tokens.Access)

	m.mu.Lock()
	m.identity = identity
	m.tokens = tokens
	subs := append([]func(*models.Identity){}, m.subs...)
	m.mu.Unlock()
	notify(subs, identity)
}

func notify(subs []func(*models.Identity), identity *models.Identity) {
	for _, fn := range subs {
		fn(identity)
	}
}

// demoIdentity is the fixed record behind the demo sentinel.
func demoIdentity() *models.Identity {
	return &models.Identity{
		ID:        1,
		Email:     "demo@recruirtart.com",
		FirstName: "Demo",
		LastName:  "User",
		Role:      "admin",
		IsDemo:    true,
	}
}
