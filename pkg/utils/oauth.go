package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jakechorley/shift-planner/internal/config"
)

// ScopeSheets grants read/write access to spreadsheets, used to publish months
const ScopeSheets = "https://www.googleapis.com/auth/spreadsheets"

const (
	authPort     = 3000
	authTimeout  = 5 * time.Minute
	callbackPath = "/oauth/callback"
	tokenDir     = ".shift-planner/tokens"
)

var (
	tokenCache   *oauth2.Token
	tokenCacheMu sync.Mutex
)

// storedToken is the on-disk token together with the scopes it was granted for
type storedToken struct {
	Scopes []string      `json:"scopes"`
	Token  *oauth2.Token `json:"token"`
}

// GetOAuthConfig creates an OAuth2 config from the OAuth client configuration
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	oauthConfigJSON, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	googleConfig, err := google.ConfigFromJSON(oauthConfigJSON, ScopeSheets)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}
	googleConfig.RedirectURL = fmt.Sprintf("http://localhost:%d%s", authPort, callbackPath)

	return googleConfig, nil
}

// GetTokenWithFlow returns a token for env. A stored token is reused (and refreshed
// if expired) when it was granted the configured scopes; otherwise the browser flow runs.
// Only one flow runs at a time.
func GetTokenWithFlow(ctx context.Context, oauthConfig *oauth2.Config, env string, logger *zap.Logger) (*oauth2.Token, error) {
	tokenCacheMu.Lock()
	defer tokenCacheMu.Unlock()

	if tokenCache != nil && tokenCache.Valid() {
		return tokenCache, nil
	}

	stored, err := loadToken(env, oauthConfig.Scopes)
	if err != nil {
		logger.Warn("Ignoring stored token", zap.Error(err))
	}
	if stored != nil {
		token, err := oauthConfig.TokenSource(ctx, stored).Token()
		if err == nil {
			if token.AccessToken != stored.AccessToken {
				logger.Debug("Token refreshed", zap.String("env", env))
				if err := saveToken(env, oauthConfig.Scopes, token); err != nil {
					logger.Warn("Failed to save refreshed token", zap.Error(err))
				}
			}
			tokenCache = token
			return token, nil
		}
		logger.Info("Stored token could not be refreshed", zap.Error(err))
	}

	logger.Info("Starting OAuth flow", zap.String("env", env))
	token, err := authorize(ctx, oauthConfig)
	if err != nil {
		return nil, err
	}

	if err := saveToken(env, oauthConfig.Scopes, token); err != nil {
		logger.Warn("Failed to save token", zap.Error(err))
	}
	tokenCache = token
	return token, nil
}

// authorize sends the user to the consent page and exchanges the code the
// local callback receives
func authorize(ctx context.Context, oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	state := uuid.NewString()
	fmt.Printf("\nVisit this URL to authorize shift-planner:\n%s\n\n", oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline))

	code, err := awaitCallback(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

// awaitCallback serves the redirect URL until a code for state arrives or the flow times out
func awaitCallback(ctx context.Context, state string) (string, error) {
	codes := make(chan string, 1)
	errs := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("state") != state || query.Get("code") == "" {
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			select {
			case errs <- errors.New("invalid authorization callback"):
			default:
			}
			return
		}
		fmt.Fprintln(w, "shift-planner authorized. You can close this window.")
		select {
		case codes <- query.Get("code"):
		default:
		}
	})

	server := &http.Server{Addr: fmt.Sprintf(":%d", authPort), Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("server error: %w", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	select {
	case code := <-codes:
		return code, nil
	case err := <-errs:
		return "", err
	case <-timeoutCtx.Done():
		return "", fmt.Errorf("authorization timeout after %v", authTimeout)
	}
}

// ClearToken clears the token from memory cache
func ClearToken() {
	tokenCacheMu.Lock()
	defer tokenCacheMu.Unlock()
	tokenCache = nil
}

// DeleteTokenFile deletes the stored token for env. A missing file is not an error.
func DeleteTokenFile(env string) error {
	path, err := tokenPath(env)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

func tokenPath(env string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, tokenDir, fmt.Sprintf("token-%s.json", env)), nil
}

// loadToken returns nil when no token is stored or it was granted other scopes
func loadToken(env string, scopes []string) (*oauth2.Token, error) {
	path, err := tokenPath(env)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var stored storedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	for _, scope := range scopes {
		if !slices.Contains(stored.Scopes, scope) {
			return nil, fmt.Errorf("stored token lacks scope %s", scope)
		}
	}
	return stored.Token, nil
}

func saveToken(env string, scopes []string, token *oauth2.Token) error {
	path, err := tokenPath(env)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(storedToken{Scopes: scopes, Token: token})
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
