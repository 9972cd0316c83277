// package auth acquires bearer tokens with the OAuth2 client-credentials grant
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotapp/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultTokenURL is the Spotify accounts token endpoint.
const DefaultTokenURL = "https://accounts.spotify.com/api/token"

// TokenSource yields an opaque bearer token. Views depend on this instead of [Provider]
// so tests can hand them a fixed or failing token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Provider exchanges a client id/secret pair for an access token.
//
// Every call to [Provider.Token] performs exactly one exchange: tokens are neither cached,
// refreshed nor persisted. Views call it once per mount.
type Provider struct {
	config *clientcredentials.Config
	logger *log.Logger
}

// NewProvider builds a [Provider] from the Spotify credentials. An empty tokenURL uses [DefaultTokenURL].
func NewProvider(creds shared.SpotifyConfig, tokenURL string, logger *log.Logger) (*Provider, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client_id and client_secret are required", shared.ErrMissingCredentials)
	}

	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Provider{
		config: &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		logger: logger,
	}, nil
}

// Token performs a client-credentials exchange and returns the access token.
//
// Failures are logged and returned wrapped in [shared.ErrAuthFailed]; callers treat the
// token as absent and skip every dependent request.
func (p *Provider) Token(ctx context.Context) (string, error) {
	tok, err := p.config.Token(ctx)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			p.logger.Error("token exchange rejected", "status", re.Response.StatusCode, "code", re.ErrorCode)
		} else {
			p.logger.Error("token exchange failed", "error", err)
		}
		return "", fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}

	if tok.AccessToken == "" {
		p.logger.Error("token exchange returned an empty token")
		return "", fmt.Errorf("%w: empty access token", shared.ErrAuthFailed)
	}

	p.logger.Debug("token acquired", "type", tok.TokenType, "expiry", tok.Expiry)
	return tok.AccessToken, nil
}

// StaticToken is a [TokenSource] that always yields the same token.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty static token", shared.ErrNotAuthenticated)
	}
	return string(s), nil
}
