package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jakechorley/shift-planner/internal/config"
)

func TestTokenFileRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	scopes := []string{ScopeSheets}

	token, err := loadToken("test", scopes)
	require.NoError(t, err)
	assert.Nil(t, token, "no token saved yet")

	saved := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, saveToken("test", scopes, saved))

	path := filepath.Join(home, tokenDir, "token-test.json")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := loadToken("test", scopes)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved.AccessToken, loaded.AccessToken)
	assert.Equal(t, saved.RefreshToken, loaded.RefreshToken)
	assert.True(t, saved.Expiry.Equal(loaded.Expiry))

	other, err := loadToken("prod", scopes)
	require.NoError(t, err)
	assert.Nil(t, other, "tokens are per environment")

	require.NoError(t, DeleteTokenFile("test"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, DeleteTokenFile("test"), "deleting a missing token is fine")
}

func TestLoadToken_RejectsOtherScopes(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, saveToken("test", []string{"https://www.googleapis.com/auth/drive"}, &oauth2.Token{AccessToken: "access"}))

	token, err := loadToken("test", []string{ScopeSheets})
	assert.Error(t, err)
	assert.Nil(t, token)
}

func TestGetOAuthConfig(t *testing.T) {
	cfg := &config.OAuthClientConfig{
		Installed: config.OAuthInstalled{
			ClientID:                "client-id",
			ProjectID:               "shift-planner",
			AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
			TokenURI:                "https://oauth2.googleapis.com/token",
			AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
			ClientSecret:            "secret",
			RedirectURIs:            []string{"http://localhost"},
		},
	}

	oauthConfig, err := GetOAuthConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "client-id", oauthConfig.ClientID)
	assert.Equal(t, []string{ScopeSheets}, oauthConfig.Scopes)
	assert.Equal(t, "http://localhost:3000/oauth/callback", oauthConfig.RedirectURL)
}
