package authflow

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-login-service/idp"
	"github.com/jrsteele09/go-login-service/sessions"
	"github.com/jrsteele09/go-login-service/users"
)

// Provider is the slice of the identity-provider client the flow depends on.
type Provider interface {
	BuildAuthorizationRequest() (authURL, state string)
	ExchangeCode(ctx context.Context, code string) (idp.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Revoke(ctx context.Context, token string) error
	FetchUserInfo(ctx context.Context, accessToken string) (idp.UserInfo, error)
}

// Service sequences CSRF validation, code exchange, user resolution and
// session issuance. It adds no retries of its own: a failed login is
// recovered by the user starting the flow again.
type Service struct {
	sessions sessions.Repo
	resolver *users.Resolver
	provider Provider
	contexts *ContextRegistry
}

func NewService(sessionRepo sessions.Repo, resolver *users.Resolver, provider Provider) *Service {
	return &Service{
		sessions: sessionRepo,
		resolver: resolver,
		provider: provider,
		contexts: NewContextRegistry(),
	}
}

// LoginRedirect is what login initiation hands back to the transport layer:
// where to send the browser and the session id to put in the SESSION cookie.
type LoginRedirect struct {
	AuthURL   string
	SessionID string
}

// StartLogin binds a fresh CSRF state value to a fresh session id and
// returns the provider redirect carrying that state.
func (s *Service) StartLogin(ctx context.Context) (LoginRedirect, error) {
	authURL, state := s.provider.BuildAuthorizationRequest()

	sessionID := newSessionID()
	if err := s.sessions.Create(ctx, sessionID, state); err != nil {
		return LoginRedirect{}, fmt.Errorf("store login session: %w", err)
	}

	return LoginRedirect{AuthURL: authURL, SessionID: sessionID}, nil
}

// UserFor reports the authenticated user for a session, if any.
func (s *Service) UserFor(sessionID string) (users.Context, bool) {
	return s.contexts.Get(sessionID)
}

// RefreshAccessToken trades the refresh token held by the browser for a new
// access token.
func (s *Service) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	return s.provider.Refresh(ctx, refreshToken)
}

// Logout revokes the refresh token when one is presented and clears the
// session's user context. A revocation failure is surfaced, not swallowed;
// the context is only cleared once the provider has accepted the revoke.
// Only the refresh token is revoked: the provider revokes the paired access
// token along with it.
func (s *Service) Logout(ctx context.Context, sessionID, refreshToken string) error {
	if refreshToken != "" {
		if err := s.provider.Revoke(ctx, refreshToken); err != nil {
			return err
		}
	}
	if sessionID != "" {
		s.contexts.Clear(sessionID)
	}
	return nil
}
