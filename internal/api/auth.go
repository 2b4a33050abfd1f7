package api

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/clearpass-tools/cpapi/internal/apperror"
	"github.com/clearpass-tools/cpapi/internal/config"
)

// An AuthStrategy is one way of satisfying the API's OAuth2 requirement.
// Exactly one strategy is active per invocation; see SelectStrategy.
type AuthStrategy interface {
	// Token returns the bearer token to present, or ok=false when the request
	// goes out unauthenticated. Strategies that perform a grant issue one
	// extra HTTP exchange against tokenURL; the token is never persisted.
	Token(ctx context.Context, tokenURL string, hc *http.Client) (token string, ok bool, err error)
}

// NoAuth sends the request without an Authorization header. Only useful for
// probing the /oauth endpoint itself.
type NoAuth struct{}

func (NoAuth) Token(context.Context, string, *http.Client) (string, bool, error) {
	return "", false, nil
}

// BearerToken presents an access token obtained out of band, skipping the
// OAuth2 handshake.
type BearerToken struct {
	AccessToken string
}

func (b BearerToken) Token(context.Context, string, *http.Client) (string, bool, error) {
	return b.AccessToken, true, nil
}

// ClientCredentials obtains a token with the client_credentials grant.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
}

func (c ClientCredentials) Token(ctx context.Context, tokenURL string, hc *http.Client) (string, bool, error) {
	conf := &clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	tok, err := conf.Token(withHTTPClient(ctx, hc))
	if err != nil {
		return "", false, fmt.Errorf("client_credentials grant failed: %w", err)
	}
	return tok.AccessToken, true, nil
}

// PasswordPublic obtains a token with the password grant as a public client
// (no client secret).
type PasswordPublic struct {
	ClientID string
	Username string
	Password string
}

func (p PasswordPublic) Token(ctx context.Context, tokenURL string, hc *http.Client) (string, bool, error) {
	return passwordGrant(ctx, tokenURL, hc, p.ClientID, "", p.Username, p.Password)
}

// PasswordConfidential obtains a token with the password grant as a
// confidential client.
type PasswordConfidential struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

func (p PasswordConfidential) Token(ctx context.Context, tokenURL string, hc *http.Client) (string, bool, error) {
	return passwordGrant(ctx, tokenURL, hc, p.ClientID, p.ClientSecret, p.Username, p.Password)
}

func passwordGrant(ctx context.Context, tokenURL string, hc *http.Client, id, secret, username, password string) (string, bool, error) {
	conf := &oauth2.Config{
		ClientID:     id,
		ClientSecret: secret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	tok, err := conf.PasswordCredentialsToken(withHTTPClient(ctx, hc), username, password)
	if err != nil {
		return "", false, fmt.Errorf("password grant failed: %w", err)
	}
	return tok.AccessToken, true, nil
}

// withHTTPClient makes the oauth2 token exchange reuse our transport, so
// --insecure covers the handshake too.
func withHTTPClient(ctx context.Context, hc *http.Client) context.Context {
	if hc == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, hc)
}

// SelectStrategy picks the single authorization strategy implied by the
// populated credential fields, checked in precedence order. authorize=false
// (--unauthorized) only matters when no usable credentials are set.
func SelectStrategy(cfg config.Config, authorize bool) (AuthStrategy, error) {
	switch {
	case cfg.AccessToken != "":
		return BearerToken{AccessToken: cfg.AccessToken}, nil
	case cfg.ClientID != "" && cfg.ClientSecret != "" && cfg.Username == "":
		return ClientCredentials{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret}, nil
	case cfg.ClientID != "" && cfg.ClientSecret == "" && cfg.Username != "" && cfg.Password != "":
		return PasswordPublic{ClientID: cfg.ClientID, Username: cfg.Username, Password: cfg.Password}, nil
	case cfg.ClientID != "" && cfg.ClientSecret != "" && cfg.Username != "" && cfg.Password != "":
		return PasswordConfidential{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Username:     cfg.Username,
			Password:     cfg.Password,
		}, nil
	case !authorize:
		return NoAuth{}, nil
	default:
		return nil, apperror.ConfigErrorf("Insufficient OAuth2 credentials: supply --access-token, --client-id with --client-secret, or --client-id with --username and --password")
	}
}
