package authflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-login-service/authflow"
	"github.com/jrsteele09/go-login-service/idp"
	"github.com/jrsteele09/go-login-service/sessions"
	fakesessionrepo "github.com/jrsteele09/go-login-service/sessions/repofake"
	"github.com/jrsteele09/go-login-service/users"
	fakeuserrepo "github.com/jrsteele09/go-login-service/users/repofake"
)

type stubProvider struct {
	state    string
	tokens   idp.TokenPair
	userInfo idp.UserInfo

	exchangeErr error
	userInfoErr error
	refreshErr  error
	revokeErr   error

	exchangedCode string
	revokedToken  string
}

func (p *stubProvider) BuildAuthorizationRequest() (string, string) {
	return "https://provider.example.com/auth?state=" + p.state, p.state
}

func (p *stubProvider) ExchangeCode(_ context.Context, code string) (idp.TokenPair, error) {
	p.exchangedCode = code
	if p.exchangeErr != nil {
		return idp.TokenPair{}, p.exchangeErr
	}
	return p.tokens, nil
}

func (p *stubProvider) Refresh(context.Context, string) (string, error) {
	if p.refreshErr != nil {
		return "", p.refreshErr
	}
	return "refreshed-access-token", nil
}

func (p *stubProvider) Revoke(_ context.Context, token string) error {
	if p.revokeErr != nil {
		return p.revokeErr
	}
	p.revokedToken = token
	return nil
}

func (p *stubProvider) FetchUserInfo(context.Context, string) (idp.UserInfo, error) {
	if p.userInfoErr != nil {
		return idp.UserInfo{}, p.userInfoErr
	}
	return p.userInfo, nil
}

type fixture struct {
	sessionRepo *fakesessionrepo.FakeSessionRepo
	userRepo    *fakeuserrepo.FakeUserRepo
	provider    *stubProvider
	service     *authflow.Service
}

func setup(t *testing.T) *fixture {
	t.Helper()

	sessionRepo := fakesessionrepo.NewFakeSessionRepo()
	userRepo := fakeuserrepo.NewFakeUserRepo()
	provider := &stubProvider{
		state:  "csrf-state-1",
		tokens: idp.TokenPair{AccessToken: "at-1", RefreshToken: "rt-1"},
		userInfo: idp.UserInfo{
			Subject:    "subject-1",
			Email:      "jane@example.com",
			GivenName:  "Jane",
			FamilyName: "Doe",
		},
	}

	return &fixture{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		provider:    provider,
		service:     authflow.NewService(sessionRepo, users.NewResolver(userRepo), provider),
	}
}

func TestStartLoginStoresCSRFToken(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	redirect, err := f.service.StartLogin(ctx)
	require.NoError(t, err)
	require.Equal(t, "https://provider.example.com/auth?state=csrf-state-1", redirect.AuthURL)
	require.NotEmpty(t, redirect.SessionID)

	token, err := f.sessionRepo.ConsumeCSRFToken(ctx, redirect.SessionID)
	require.NoError(t, err)
	require.Equal(t, "csrf-state-1", token)
}

func TestCallbackSuccess(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	redirect, err := f.service.StartLogin(ctx)
	require.NoError(t, err)

	result, err := f.service.Callback(ctx, authflow.CallbackInput{
		SessionID: redirect.SessionID,
		State:     "csrf-state-1",
		Code:      "auth-code-1",
	})
	require.NoError(t, err)
	require.Equal(t, "auth-code-1", f.provider.exchangedCode)
	require.Equal(t, idp.TokenPair{AccessToken: "at-1", RefreshToken: "rt-1"}, result.Tokens)
	require.Equal(t, "jane@example.com", result.User.Email)

	// The login session is spent; the authenticated session gets a new id.
	require.NotEmpty(t, result.SessionID)
	require.NotEqual(t, redirect.SessionID, result.SessionID)

	userCtx, ok := f.service.UserFor(result.SessionID)
	require.True(t, ok)
	require.Equal(t, result.User, userCtx)
}

func TestCallbackReplayedSessionFails(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	redirect, err := f.service.StartLogin(ctx)
	require.NoError(t, err)

	input := authflow.CallbackInput{SessionID: redirect.SessionID, State: "csrf-state-1", Code: "auth-code-1"}
	_, err = f.service.Callback(ctx, input)
	require.NoError(t, err)

	// Replaying the callback finds the session already expired, whatever
	// state value it carries.
	_, err = f.service.Callback(ctx, input)
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestCallbackCSRFMismatchExpiresSession(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	redirect, err := f.service.StartLogin(ctx)
	require.NoError(t, err)

	_, err = f.service.Callback(ctx, authflow.CallbackInput{
		SessionID: redirect.SessionID,
		State:     "wrong",
		Code:      "auth-code-1",
	})
	require.ErrorIs(t, err, authflow.ErrCSRFMismatch)
	require.NotErrorIs(t, err, sessions.ErrNotFound)

	// The session was consumed before the comparison, so it is gone.
	_, err = f.sessionRepo.ConsumeCSRFToken(ctx, redirect.SessionID)
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestCallbackUnknownSession(t *testing.T) {
	f := setup(t)

	_, err := f.service.Callback(context.Background(), authflow.CallbackInput{
		SessionID: "never-created",
		State:     "csrf-state-1",
		Code:      "auth-code-1",
	})
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestCallbackExchangeFailureIsTerminal(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.provider.exchangeErr = idp.ErrExchangeFailed

	redirect, err := f.service.StartLogin(ctx)
	require.NoError(t, err)

	_, err = f.service.Callback(ctx, authflow.CallbackInput{
		SessionID: redirect.SessionID,
		State:     "csrf-state-1",
		Code:      "auth-code-1",
	})
	require.ErrorIs(t, err, idp.ErrExchangeFailed)
	require.Equal(t, 0, f.userRepo.Count())
}

func TestCallbackMissingRefreshTokenIsTerminal(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.provider.exchangeErr = idp.ErrMissingRefreshToken

	redirect, err := f.service.StartLogin(ctx)
	require.NoError(t, err)

	_, err = f.service.Callback(ctx, authflow.CallbackInput{
		SessionID: redirect.SessionID,
		State:     "csrf-state-1",
		Code:      "auth-code-1",
	})
	require.ErrorIs(t, err, idp.ErrMissingRefreshToken)
}

func TestCallbackUserInfoFailureIsTerminal(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.provider.userInfoErr = idp.ErrUserInfoFetch

	redirect, err := f.service.StartLogin(ctx)
	require.NoError(t, err)

	_, err = f.service.Callback(ctx, authflow.CallbackInput{
		SessionID: redirect.SessionID,
		State:     "csrf-state-1",
		Code:      "auth-code-1",
	})
	require.ErrorIs(t, err, idp.ErrUserInfoFetch)
	require.Equal(t, 0, f.userRepo.Count())
}

func TestCallbackResolvesExistingUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	id, err := f.userRepo.Insert(ctx, users.User{
		Subject:   "subject-1",
		Email:     "stored@example.com",
		FirstName: "Janet",
	})
	require.NoError(t, err)

	redirect, err := f.service.StartLogin(ctx)
	require.NoError(t, err)

	result, err := f.service.Callback(ctx, authflow.CallbackInput{
		SessionID: redirect.SessionID,
		State:     "csrf-state-1",
		Code:      "auth-code-1",
	})
	require.NoError(t, err)
	require.Equal(t, id, result.User.UserID)
	require.Equal(t, "stored@example.com", result.User.Email)
	require.Equal(t, 1, f.userRepo.Count())
}

func TestLogoutRevokesAndClearsContext(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	redirect, err := f.service.StartLogin(ctx)
	require.NoError(t, err)
	result, err := f.service.Callback(ctx, authflow.CallbackInput{
		SessionID: redirect.SessionID,
		State:     "csrf-state-1",
		Code:      "auth-code-1",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, result.SessionID, result.Tokens.RefreshToken))
	require.Equal(t, "rt-1", f.provider.revokedToken)

	_, ok := f.service.UserFor(result.SessionID)
	require.False(t, ok)
}

func TestLogoutRevocationFailureKeepsContext(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	redirect, err := f.service.StartLogin(ctx)
	require.NoError(t, err)
	result, err := f.service.Callback(ctx, authflow.CallbackInput{
		SessionID: redirect.SessionID,
		State:     "csrf-state-1",
		Code:      "auth-code-1",
	})
	require.NoError(t, err)

	f.provider.revokeErr = idp.ErrInvalidToken
	err = f.service.Logout(ctx, result.SessionID, result.Tokens.RefreshToken)
	require.ErrorIs(t, err, idp.ErrInvalidToken)

	_, ok := f.service.UserFor(result.SessionID)
	require.True(t, ok)
}

func TestLogoutWithoutRefreshTokenSkipsRevocation(t *testing.T) {
	f := setup(t)
	f.provider.revokeErr = errors.New("revocation endpoint should not be called")

	require.NoError(t, f.service.Logout(context.Background(), "some-session", ""))
}

func TestRefreshAccessToken(t *testing.T) {
	f := setup(t)

	accessToken, err := f.service.RefreshAccessToken(context.Background(), "rt-1")
	require.NoError(t, err)
	require.Equal(t, "refreshed-access-token", accessToken)
}

func TestRefreshAccessTokenFailurePropagates(t *testing.T) {
	f := setup(t)
	f.provider.refreshErr = idp.ErrRefreshFailed

	_, err := f.service.RefreshAccessToken(context.Background(), "rt-1")
	require.ErrorIs(t, err, idp.ErrRefreshFailed)
}
