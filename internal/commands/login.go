package commands

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"wrapitup/internal/backend/firestore"
	"wrapitup/internal/config"
	"wrapitup/internal/exitcode"
	"wrapitup/internal/task"
)

const (
	// OAuth callback timeout
	oauthCallbackTimeout = 5 * time.Minute

	// Token exchange timeout
	tokenExchangeTimeout = 30 * time.Second

	// Starting port for OAuth callback server
	oauthStartPort = 8085

	// Max port attempts
	oauthMaxPortAttempts = 5
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command: browser sign-in, token storage,
// and a userinfo fetch that pins the owner id every later call is scoped by.
// The project id arrives through the common -project flag.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in with Google" }
func (c *LoginCmd) Usage() string     { return "wrapitup login [-project <gcp-project-id>] [common flags]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, store task.Store, args []string, out, errOut io.Writer) int {
	// Check if oauth_client.json exists
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n\n", cfg.Dir)
		fmt.Fprintln(errOut, "To sign in, you need OAuth credentials for your Firebase project:")
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "1. Go to https://console.cloud.google.com/apis/credentials")
		fmt.Fprintln(errOut, "2. Select the project backing your Firestore database")
		fmt.Fprintln(errOut, "3. Enable the Cloud Firestore API:")
		fmt.Fprintln(errOut, "   https://console.cloud.google.com/apis/library/firestore.googleapis.com")
		fmt.Fprintln(errOut, "4. Create OAuth 2.0 credentials:")
		fmt.Fprintln(errOut, "   - Click 'Create Credentials' > 'OAuth client ID'")
		fmt.Fprintln(errOut, "   - Choose 'Desktop app' as application type")
		fmt.Fprintln(errOut, "   - Download the JSON file")
		fmt.Fprintln(errOut, "5. Save it as:")
		fmt.Fprintf(errOut, "   %s/oauth_client.json\n", cfg.Dir)
		fmt.Fprintln(errOut, "")
		fmt.Fprintln(errOut, "Then run 'wrapitup login' again.")
		return exitcode.AuthError
	}

	// Resolve the project id before going to the browser; the -project flag
	// wins over the stored file.
	project := cfg.LoadProject()
	if project == "" {
		fmt.Fprintln(errOut, "error: no project configured (run: wrapitup login -project <gcp-project-id>)")
		return exitcode.AuthError
	}

	// Already signed in with a usable token and a cached profile?
	if cfg.HasToken() && isTokenValid(cfg) {
		if _, err := cfg.LoadProfile(); err == nil {
			if !cfg.Quiet {
				fmt.Fprintln(out, "already logged in")
			}
			return exitcode.Success
		}
	}

	// Load OAuth client config
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read oauth_client.json: %v\n", err)
		return exitcode.AuthError
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, firestore.Scopes...)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid oauth_client.json: %v\n", err)
		return exitcode.AuthError
	}

	// Find available port
	port, listener, err := findAvailablePort()
	if err != nil {
		fmt.Fprintln(errOut, "error: could not bind to local port for OAuth callback")
		return exitcode.AuthError
	}
	defer listener.Close()

	oauthConfig.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)

	// PKCE verifier
	verifier := oauth2.GenerateVerifier()

	authURL := oauthConfig.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	fmt.Fprintln(errOut, "Open this URL in your browser:")
	fmt.Fprintln(errOut, authURL)

	// Start callback server
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if e := r.URL.Query().Get("error"); e != "" {
			// The provider redirects here with error=access_denied when the
			// user backs out of the consent screen.
			http.Error(w, "Sign-in cancelled", http.StatusBadRequest)
			errCh <- &task.AuthError{Kind: task.AuthCancelled}
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			errCh <- &task.AuthError{Kind: task.AuthOther, Err: errors.New("no code in callback")}
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Sign-in successful</h1><p>You may close this window.</p></body></html>")
		codeCh <- code
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for callback or timeout
	var code string
	select {
	case code = <-codeCh:
		// Got code
	case err := <-errCh:
		return reportAuthError(errOut, err)
	case <-time.After(oauthCallbackTimeout):
		return reportAuthError(errOut, &task.AuthError{Kind: task.AuthCancelled})
	case <-ctx.Done():
		return reportAuthError(errOut, &task.AuthError{Kind: task.AuthCancelled})
	}

	// Shutdown server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)

	// Exchange code for token
	exchangeCtx, cancelExchange := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancelExchange()

	token, err := oauthConfig.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return reportAuthError(errOut, classifyAuthErr(err))
	}

	// Fetch the identity the token belongs to; the uid scopes every query.
	profile, err := fetchProfile(ctx, oauthConfig, token)
	if err != nil {
		return reportAuthError(errOut, classifyAuthErr(err))
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	if err := saveToken(cfg.TokenPath(), token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}
	if err := cfg.SaveProfile(profile); err != nil {
		fmt.Fprintf(errOut, "error: failed to save profile: %v\n", err)
		return exitcode.AuthError
	}
	if err := cfg.SaveProject(project); err != nil {
		fmt.Fprintf(errOut, "error: failed to save project id: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", profile.Email)
	}
	return exitcode.Success
}

// fetchProfile asks the identity provider who the token belongs to.
func fetchProfile(ctx context.Context, oauthConfig *oauth2.Config, token *oauth2.Token) (task.Profile, error) {
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	svc, err := oauth2api.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return task.Profile{}, err
	}
	ui, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return task.Profile{}, err
	}
	return task.Profile{
		UID:         ui.Id,
		Email:       ui.Email,
		DisplayName: ui.Name,
		PhotoURL:    ui.Picture,
	}, nil
}

// classifyAuthErr maps raw provider failures to the auth error taxonomy so
// they are never surfaced raw.
func classifyAuthErr(err error) error {
	var authErr *task.AuthError
	if errors.As(err, &authErr) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return &task.AuthError{Kind: task.AuthCancelled, Err: err}
	}
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return &task.AuthError{Kind: task.AuthNetwork, Err: err}
	}
	return &task.AuthError{Kind: task.AuthOther, Err: err}
}

// reportAuthError prints the mapped auth failure and returns the auth exit
// code.
func reportAuthError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", classifyAuthErr(err))
	return exitcode.AuthError
}

// findAvailablePort tries to find an available port starting from oauthStartPort.
func findAvailablePort() (int, net.Listener, error) {
	for i := 0; i < oauthMaxPortAttempts; i++ {
		port := oauthStartPort + i
		addr := fmt.Sprintf("localhost:%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			return port, listener, nil
		}
	}
	return 0, nil, errors.New("no available port found")
}

// isTokenValid checks if the token file contains a refreshable token that
// still authenticates.
func isTokenValid(cfg *config.Config) bool {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return false
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return false
	}
	if token.RefreshToken == "" {
		return false
	}

	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return false
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, firestore.Scopes...)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Refreshes if needed; failure means the token is expired or revoked.
	_, err = oauthConfig.TokenSource(ctx, &token).Token()
	return err == nil
}

// saveToken saves an OAuth token to a file with mode 0600.
func saveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
