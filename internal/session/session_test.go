package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-recruitart-client/internal/api"
	"go-recruitart-client/internal/models"
)

func newTestManager(t *testing.T, handler http.Handler) (*Manager, *Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := NewStore(filepath.Join(t.TempDir(), "tokens.json"))
	client := api.New(srv.URL, srv.Client())
	return NewManager(client, store), store, srv
}

func loginOKHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts/login/", "/accounts/otp/verify/":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"user": {"id": 1, "email": "a@b.com"}, "tokens": {"access": "acc", "refresh": "ref"}}`))
		case "/accounts/logout/":
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected call to %s", r.URL.Path)
			http.NotFound(w, r)
		}
	})
}

func TestResolveNoTokenIsIdempotent(t *testing.T) {
	m, _, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("resolve without a token must not call the network (%s)", r.URL.Path)
	}))

	assert.Equal(t, Resolving, m.State())
	for i := 0; i < 3; i++ {
		m.Resolve(context.Background())
		assert.Equal(t, Resolved, m.State())
		assert.Nil(t, m.Identity())
		assert.Empty(t, m.LastError())
	}
}

func TestResolveDemoSentinelSkipsNetwork(t *testing.T) {
	m, store, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("demo sentinel must never hit the network (%s)", r.URL.Path)
	}))
	require.NoError(t, store.Save(models.Tokens{Access: DemoToken}))

	m.Resolve(context.Background())

	require.NotNil(t, m.Identity())
	assert.True(t, m.Identity().IsDemo)
	assert.Equal(t, "demo@recruirtart.com", m.Identity().Email)
	assert.Equal(t, Resolved, m.State())
}

func TestResolveRejectedTokenClearsStore(t *testing.T) {
	m, store, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Token is invalid or expired"}`))
	}))
	require.NoError(t, store.Save(models.Tokens{Access: "stale", Refresh: "stale-r"}))

	m.Resolve(context.Background())

	assert.Equal(t, Resolved, m.State())
	assert.Nil(t, m.Identity())
	tokens, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, tokens.Access, "rejected tokens must be cleared")
	assert.Empty(t, tokens.Refresh)
}

func TestResolveRestoresSession(t *testing.T) {
	m, store, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accounts/profile/", r.URL.Path)
		require.Equal(t, "Bearer good", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user": {"id": 4, "email": "back@x.com"}, "applications": []}`))
	}))
	require.NoError(t, store.Save(models.Tokens{Access: "good"}))

	m.Resolve(context.Background())

	require.NotNil(t, m.Identity())
	assert.Equal(t, "back@x.com", m.Identity().Email)
}

func TestLoginPersistsTokensAndIdentity(t *testing.T) {
	m, store, _ := newTestManager(t, loginOKHandler(t))
	m.Resolve(context.Background())

	require.NoError(t, m.Login(context.Background(), "a@b.com", "pw"))

	require.NotNil(t, m.Identity())
	tokens, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "acc", tokens.Access)
	assert.Equal(t, "ref", tokens.Refresh)
}

func TestLoginFailureMessageAndState(t *testing.T) {
	m, store, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Invalid password"}`))
	}))
	m.Resolve(context.Background())

	err := m.Login(context.Background(), "a@b.com", "nope")

	require.Error(t, err)
	assert.Equal(t, "Invalid password", err.Error())
	assert.Equal(t, "Invalid password", m.LastError())
	assert.Nil(t, m.Identity())
	tokens, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, tokens.Access)
}

func TestLoginServerFaultUsesAdvisory(t *testing.T) {
	m, _, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	m.Resolve(context.Background())

	err := m.Login(context.Background(), "a@b.com", "pw")
	require.Error(t, err)
	assert.Equal(t, api.ServiceUnavailableMessage, err.Error())
}

func TestFailedFlowKeepsExistingSession(t *testing.T) {
	calls := 0
	m, store, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			_, _ = w.Write([]byte(`{"user": {"id": 1, "email": "a@b.com"}, "tokens": {"access": "acc"}}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Invalid OTP code"}`))
	}))
	m.Resolve(context.Background())

	require.NoError(t, m.Login(context.Background(), "a@b.com", "pw"))
	require.Error(t, m.VerifyOTP(context.Background(), "555", "0000", "login"))

	// identity present <=> tokens persisted, even across a failed flow
	require.NotNil(t, m.Identity())
	tokens, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "acc", tokens.Access)
}

func TestLogoutAlwaysClears(t *testing.T) {
	m, store, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/accounts/logout/" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user": {"id": 1, "email": "a@b.com"}, "tokens": {"access": "acc"}}`))
	}))
	m.Resolve(context.Background())
	require.NoError(t, m.Login(context.Background(), "a@b.com", "pw"))
	require.NotNil(t, m.Identity())

	m.Logout(context.Background())

	assert.Nil(t, m.Identity())
	tokens, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, tokens.Access, "logout must clear tokens even when the remote call fails")
	assert.Empty(t, tokens.Refresh)
}

func TestRegisterWithoutTokensStaysLoggedOut(t *testing.T) {
	m, _, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"user": {"id": 2, "email": "new@x.com"}}`))
	}))
	m.Resolve(context.Background())

	require.NoError(t, m.Register(context.Background(), api.RegisterRequest{Email: "new@x.com"}))
	assert.Nil(t, m.Identity(), "no tokens minted means no session")
}

func TestConcurrentFlowsAreRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	m, _, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() {
			close(entered)
			<-release
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user": {"id": 1, "email": "a@b.com"}, "tokens": {"access": "acc"}}`))
	}))
	m.Resolve(context.Background())

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- m.Login(context.Background(), "a@b.com", "pw")
	}()

	// second attempt while the first one sits inside its network call
	<-entered
	assert.ErrorIs(t, m.Login(context.Background(), "a@b.com", "pw"), ErrFlowInFlight)

	close(release)
	select {
	case err := <-firstDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("first login never completed")
	}
	require.NotNil(t, m.Identity())

	// flows are accepted again once the first completes
	require.NoError(t, m.Login(context.Background(), "a@b.com", "pw"))
}

func TestSubscribeSeesIdentityChanges(t *testing.T) {
	m, _, _ := newTestManager(t, loginOKHandler(t))
	m.Resolve(context.Background())

	var events []*models.Identity
	m.Subscribe(func(id *models.Identity) { events = append(events, id) })

	require.NoError(t, m.Login(context.Background(), "a@b.com", "pw"))
	m.PatchIdentity(&models.Identity{ID: 1, Email: "a@b.com", FullName: "Renamed"})
	m.Logout(context.Background())

	require.Len(t, events, 3)
	assert.Equal(t, "a@b.com", events[0].Email)
	assert.Equal(t, "Renamed", events[1].FullName)
	assert.Nil(t, events[2])
}

func TestClearError(t *testing.T) {
	m, _, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "nope"}`))
	}))
	m.Resolve(context.Background())

	require.Error(t, m.SendOTP(context.Background(), "555", "login"))
	assert.Equal(t, "nope", m.LastError())
	m.ClearError()
	assert.Empty(t, m.LastError())
}
