package calendar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func writeCredentials(t *testing.T, redirect string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	doc := fmt.Sprintf(`{"installed": {
		"client_id": "client-id",
		"client_secret": "client-secret",
		"redirect_uris": [%q],
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token"
	}}`, redirect)
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOAuthConfigRedirect(t *testing.T) {
	tests := []struct {
		redirect string
		want     string
	}{
		{"http://localhost", "http://localhost:" + DefaultAuthPort},
		{"http://127.0.0.1/cb", "http://127.0.0.1:" + DefaultAuthPort + "/cb"},
		{"http://localhost:9000/cb", "http://localhost:9000/cb"},
		{"urn:ietf:wg:oauth:2.0:oob", "http://localhost:" + DefaultAuthPort + "/oauth2callback"},
	}
	for _, tt := range tests {
		t.Run(tt.redirect, func(t *testing.T) {
			cfg, err := LoadOAuthConfig(writeCredentials(t, tt.redirect))
			if err != nil {
				t.Fatalf("LoadOAuthConfig: %v", err)
			}
			if cfg.RedirectURL != tt.want {
				t.Errorf("RedirectURL: got %q, want %q", cfg.RedirectURL, tt.want)
			}
			if cfg.ClientID != "client-id" || len(cfg.Scopes) != len(Scopes) {
				t.Errorf("unexpected config: %+v", cfg)
			}
		})
	}
}

func TestLoadOAuthConfigErrors(t *testing.T) {
	if _, err := LoadOAuthConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"nope": {}}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOAuthConfig(bad); err == nil {
		t.Error("expected error for unrecognized credentials")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "token.json")
	if _, err := LoadToken(path); !errors.Is(err, ErrNoToken) {
		t.Fatalf("missing token: got %v, want ErrNoToken", err)
	}

	want := &oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour).Round(time.Second)}
	if err := SaveToken(path, want); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		t.Errorf("token file should be private, got %v", perm)
	}

	got, err := LoadToken(path)
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken || !got.Expiry.Equal(want.Expiry) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func tokenServer(t *testing.T, access string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token": %q, "token_type": "Bearer", "refresh_token": "refresh", "expires_in": 3600}`, access)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthorize(t *testing.T) {
	tokens := tokenServer(t, "fresh")
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	redirect := "http://" + ln.Addr().String() + "/callback"

	var out bytes.Buffer
	a := &Authorizer{
		Config: &oauth2.Config{
			ClientID:     "id",
			ClientSecret: "secret",
			RedirectURL:  redirect,
			Endpoint:     oauth2.Endpoint{AuthURL: "https://example.test/auth", TokenURL: tokens.URL},
		},
		Out:      &out,
		Listener: ln,
		Timeout:  10 * time.Second,
		OpenURL: func(authURL string) {
			u, err := url.Parse(authURL)
			if err != nil {
				t.Errorf("bad auth URL: %v", err)
				return
			}
			state := u.Query().Get("state")
			go func() {
				resp, err := http.Get(redirect + "?code=abc&state=" + url.QueryEscape(state))
				if err == nil {
					resp.Body.Close()
				}
			}()
		},
	}

	tok, err := a.Authorize(context.Background())
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if tok.AccessToken != "fresh" {
		t.Errorf("AccessToken: got %q", tok.AccessToken)
	}
	if !strings.Contains(out.String(), "access_type=offline") {
		t.Errorf("consent URL not printed: %q", out.String())
	}
}

func TestAuthorizeTimeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	a := &Authorizer{
		Config:   &oauth2.Config{RedirectURL: "http://" + ln.Addr().String() + "/"},
		Listener: ln,
		Timeout:  50 * time.Millisecond,
	}
	if _, err := a.Authorize(context.Background()); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v, want deadline exceeded", err)
	}
}

func TestClientSavesRefreshedToken(t *testing.T) {
	tokens := tokenServer(t, "refreshed")
	path := filepath.Join(t.TempDir(), "token.json")
	expired := &oauth2.Token{AccessToken: "stale", RefreshToken: "refresh", Expiry: time.Now().Add(-time.Hour)}
	if err := SaveToken(path, expired); err != nil {
		t.Fatal(err)
	}

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer refreshed" {
			http.Error(w, "bad token "+got, http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer api.Close()

	cfg := &oauth2.Config{ClientID: "id", ClientSecret: "secret", Endpoint: oauth2.Endpoint{TokenURL: tokens.URL}}
	client, err := Client(context.Background(), cfg, path)
	if err != nil {
		t.Fatalf("Client: %v", err)
	}
	resp, err := client.Get(api.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}

	saved, err := LoadToken(path)
	if err != nil {
		t.Fatal(err)
	}
	if saved.AccessToken != "refreshed" {
		t.Errorf("refreshed token not saved: %+v", saved)
	}
}

func TestClientWithoutToken(t *testing.T) {
	_, err := Client(context.Background(), &oauth2.Config{}, filepath.Join(t.TempDir(), "token.json"))
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("got %v, want ErrNoToken", err)
	}
}
