package idp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-login-service/internal/config"
)

// TokenPair holds the two secrets returned by a successful code exchange.
// It lives only for the duration of a callback; server side it is never
// persisted, the browser cookies are the only copy.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserInfo is the provider's description of the authenticated user.
type UserInfo struct {
	Subject    string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// Client talks to the identity provider. Every call is a single round trip
// with no internal retry; whether to surface or retry a failure is the
// caller's decision. Token values must never end up in logs or error text.
type Client struct {
	oauth         *oauth2.Config
	revocationURL string
	userInfoURL   string
	httpClient    *http.Client
}

func New(cfg config.ProviderConfig) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			RedirectURL:  cfg.GetRedirectURL(),
			Scopes:       cfg.GetScopes(),
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.GetAuthURL(),
				TokenURL: cfg.GetTokenURL(),
			},
		},
		revocationURL: cfg.GetRevocationURL(),
		userInfoURL:   cfg.GetUserInfoURL(),
		httpClient:    &http.Client{},
	}
}

// BuildAuthorizationRequest returns the provider redirect URL and the state
// value embedded in it. access_type=offline plus prompt=consent force the
// provider to issue a refresh token on every login, not just the first.
// No network traffic happens here.
func (c *Client) BuildAuthorizationRequest() (authURL, state string) {
	state = randomToken(32)
	authURL = c.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	return authURL, state
}

// ExchangeCode trades an authorization code for a token pair. A response
// without a refresh token is a hard failure: the refresh and revoke paths
// both assume the pair exists.
func (c *Client) ExchangeCode(ctx context.Context, code string) (TokenPair, error) {
	token, err := c.oauth.Exchange(c.withHTTPClient(ctx), code)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	if token.RefreshToken == "" {
		return TokenPair{}, ErrMissingRefreshToken
	}
	return TokenPair{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}, nil
}

// Refresh trades a refresh token for a fresh access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	source := c.oauth.TokenSource(c.withHTTPClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	return token.AccessToken, nil
}

// Revoke invalidates a token at the provider. Logout revokes only the
// refresh token, relying on the provider also revoking its paired access
// token.
func (c *Client) Revoke(ctx context.Context, token string) error {
	form := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.revocationURL, strings.NewReader(form.Encode()))
	if err != nil {
		return ErrInvalidToken
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ErrInvalidToken
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrInvalidToken
	}
	return nil
}

// FetchUserInfo asks the provider's userinfo endpoint who the access token
// belongs to.
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return UserInfo{}, fmt.Errorf("%w: %v", ErrUserInfoFetch, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return UserInfo{}, fmt.Errorf("%w: %v", ErrUserInfoFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UserInfo{}, fmt.Errorf("%w: provider returned %s", ErrUserInfoFetch, resp.Status)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return UserInfo{}, fmt.Errorf("%w: %v", ErrUserInfoFetch, err)
	}
	return info, nil
}

// withHTTPClient makes the oauth2 library use our client rather than
// http.DefaultClient.
func (c *Client) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}
