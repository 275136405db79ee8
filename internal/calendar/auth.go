package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
)

// DefaultAuthPort is used when the client credentials name a localhost
// redirect without a port.
const DefaultAuthPort = "6789"

// Scopes are the OAuth scopes sam requests.
var Scopes = []string{
	gcal.CalendarEventsScope,
	gcal.CalendarReadonlyScope,
}

// ErrNoToken means no token has been saved yet.
var ErrNoToken = errors.New("no calendar token; run 'sam calendar auth' first")

// LoadOAuthConfig reads a client credentials JSON file downloaded from the
// Google Cloud console. Localhost and out-of-band redirects are pointed at
// the local callback listener.
func LoadOAuthConfig(credentialsFile string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read client credentials %s: %w", credentialsFile, err)
	}
	cfg, err := google.ConfigFromJSON(b, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client credentials: %w", err)
	}

	if cfg.RedirectURL == "urn:ietf:wg:oauth:2.0:oob" || cfg.RedirectURL == "" {
		cfg.RedirectURL = "http://localhost:" + DefaultAuthPort + "/oauth2callback"
		return cfg, nil
	}
	u, err := url.Parse(cfg.RedirectURL)
	if err != nil {
		return nil, fmt.Errorf("parse redirect URL %q: %w", cfg.RedirectURL, err)
	}
	if (u.Hostname() == "localhost" || u.Hostname() == "127.0.0.1") && u.Port() == "" {
		u.Host = net.JoinHostPort(u.Hostname(), DefaultAuthPort)
		cfg.RedirectURL = u.String()
	}
	return cfg, nil
}

// LoadToken reads a saved token. A missing file is ErrNoToken.
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token %s: %w", path, err)
	}
	return tok, nil
}

// SaveToken writes tok readable only by the owner.
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open token file: %w", err)
	}
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		f.Close()
		return fmt.Errorf("write token: %w", err)
	}
	return f.Close()
}

// Client returns an HTTP client authorized with the saved token. Refreshed
// tokens are written back to tokenFile.
func Client(ctx context.Context, cfg *oauth2.Config, tokenFile string) (*http.Client, error) {
	tok, err := LoadToken(tokenFile)
	if err != nil {
		return nil, err
	}
	src := &savingTokenSource{
		base: cfg.TokenSource(ctx, tok),
		path: tokenFile,
		last: tok,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src)), nil
}

// savingTokenSource persists every token that differs from the last one.
type savingTokenSource struct {
	base oauth2.TokenSource
	path string

	mu   sync.Mutex
	last *oauth2.Token
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil || tok.AccessToken != s.last.AccessToken || tok.RefreshToken != s.last.RefreshToken {
		if err := SaveToken(s.path, tok); err != nil {
			return nil, err
		}
		s.last = tok
	}
	return tok, nil
}

// Authorizer runs the browser consent flow with a local callback server.
type Authorizer struct {
	Config *oauth2.Config
	// Out receives the URL the user must open.
	Out io.Writer
	// Listener overrides the listener derived from Config.RedirectURL.
	Listener net.Listener
	// OpenURL, when set, is called with the consent URL.
	OpenURL func(string)
	// Timeout bounds the wait for the user; zero means five minutes.
	Timeout time.Duration
}

// Authorize waits for the redirect carrying the authorization code and
// exchanges it for a token.
func (a *Authorizer) Authorize(ctx context.Context) (*oauth2.Token, error) {
	redirect, err := url.Parse(a.Config.RedirectURL)
	if err != nil {
		return nil, fmt.Errorf("parse redirect URL: %w", err)
	}
	ln := a.Listener
	if ln == nil {
		ln, err = net.Listen("tcp", redirect.Host)
		if err != nil {
			return nil, fmt.Errorf("listen on %s: %w", redirect.Host, err)
		}
	}
	defer ln.Close()

	timeout := a.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	state := uuid.NewString()
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	path := redirect.Path
	if path == "" {
		path = "/"
	}
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "authorization code not found", http.StatusBadRequest)
			select {
			case errCh <- fmt.Errorf("authorization denied: %s", q.Get("error")):
			default:
			}
			return
		}
		fmt.Fprintln(w, "Sam is authorized. You can close this window.")
		select {
		case codeCh <- code:
		default:
		}
	})
	server := &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case errCh <- fmt.Errorf("callback server: %w", err):
			default:
			}
		}
	}()
	defer server.Shutdown(context.Background())

	authURL := a.Config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	if a.Out != nil {
		fmt.Fprintf(a.Out, "Open this URL in your browser to authorize sam:\n%s\n", authURL)
	}
	if a.OpenURL != nil {
		a.OpenURL(authURL)
	}

	select {
	case code := <-codeCh:
		tok, err := a.Config.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("exchange authorization code: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for authorization: %w", ctx.Err())
	}
}
