package api

import (
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/terraincognita07/cyclia/internal/config"
)

func newLockedConfig(t *testing.T, passphrase string) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash passphrase: %v", err)
	}
	cfg := config.Default()
	cfg.Lock.PassphraseHash = string(hash)
	cfg.Lock.SessionSecret = "test-secret"
	return cfg
}

func TestLockedAPIRejectsAnonymousRequests(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t, newLockedConfig(t, "open sesame"))

	response, _ := doJSON(t, app, http.MethodGet, "/api/settings", nil, "")
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 while locked, got %d", response.StatusCode)
	}

	// The health check stays reachable.
	response, _ = doJSON(t, app, http.MethodGet, "/healthz", nil, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for healthz, got %d", response.StatusCode)
	}
}

func TestUnlockFlow(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t, newLockedConfig(t, "open sesame"))

	response, _ := doJSON(t, app, http.MethodPost, "/api/auth/unlock", map[string]string{"passphrase": "wrong"}, "")
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a wrong passphrase, got %d", response.StatusCode)
	}

	response, _ = doJSON(t, app, http.MethodPost, "/api/auth/unlock", map[string]string{"passphrase": "open sesame"}, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for the right passphrase, got %d", response.StatusCode)
	}

	var sessionCookie string
	for _, cookie := range response.Cookies() {
		if cookie.Name == lockCookieName {
			sessionCookie = cookie.Name + "=" + cookie.Value
		}
	}
	if sessionCookie == "" {
		t.Fatal("unlock must set the session cookie")
	}

	response, _ = doJSON(t, app, http.MethodGet, "/api/settings", nil, sessionCookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with a session cookie, got %d", response.StatusCode)
	}

	// A forged cookie is rejected.
	response, _ = doJSON(t, app, http.MethodGet, "/api/settings", nil, lockCookieName+"=garbage")
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a forged cookie, got %d", response.StatusCode)
	}
}

func TestUnlockedConfigKeepsAPIOpen(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t, nil)
	response, _ := doJSON(t, app, http.MethodGet, "/api/settings", nil, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 without a configured lock, got %d", response.StatusCode)
	}
}
