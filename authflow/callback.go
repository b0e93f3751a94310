package authflow

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/jrsteele09/go-login-service/idp"
	"github.com/jrsteele09/go-login-service/users"
)

// State names a position in the callback sequence. Failure is terminal from
// any state.
type State int

const (
	StateInit State = iota
	StateCSRFValidated
	StateCodeExchanged
	StateUserResolved
	StateContextCommitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateCSRFValidated:
		return "csrf-validated"
	case StateCodeExchanged:
		return "code-exchanged"
	case StateUserResolved:
		return "user-resolved"
	case StateContextCommitted:
		return "context-committed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CallbackInput carries the values the transport layer extracted from the
// provider redirect and the browser's cookies.
type CallbackInput struct {
	SessionID string // From the SESSION cookie
	State     string // state query parameter echoed by the provider
	Code      string // Authorization code to exchange
}

// CallbackResult is handed back on success. SessionID is a fresh id for the
// authenticated session; the consumed login session id is never reused.
type CallbackResult struct {
	SessionID string
	Tokens    idp.TokenPair
	User      users.Context
}

// Callback runs the callback state machine to completion. The first failed
// transition aborts the flow; nothing is retried.
func (s *Service) Callback(ctx context.Context, input CallbackInput) (CallbackResult, error) {
	cb := &callback{svc: s, input: input, state: StateInit}

	transitions := []func(context.Context) error{
		cb.validateCSRF,
		cb.exchangeCode,
		cb.resolveUser,
		cb.commitContext,
	}
	for _, transition := range transitions {
		if err := transition(ctx); err != nil {
			cb.state = StateFailed
			return CallbackResult{}, err
		}
	}

	return cb.result, nil
}

// callback holds the working state for one provider redirect.
type callback struct {
	svc    *Service
	input  CallbackInput
	state  State
	tokens idp.TokenPair
	result CallbackResult
}

// validateCSRF consumes the login session and compares its stored token
// against the state echoed by the provider. Consuming expires the session
// before the comparison happens, so a replayed callback with the same cookie
// always finds the session already gone, whatever this comparison decides.
func (cb *callback) validateCSRF(ctx context.Context) error {
	storedToken, err := cb.svc.sessions.ConsumeCSRFToken(ctx, cb.input.SessionID)
	if err != nil {
		return fmt.Errorf("consume login session: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(storedToken), []byte(cb.input.State)) != 1 {
		return ErrCSRFMismatch
	}

	cb.state = StateCSRFValidated
	return nil
}

func (cb *callback) exchangeCode(ctx context.Context) error {
	tokens, err := cb.svc.provider.ExchangeCode(ctx, cb.input.Code)
	if err != nil {
		return err
	}

	cb.tokens = tokens
	cb.state = StateCodeExchanged
	return nil
}

func (cb *callback) resolveUser(ctx context.Context) error {
	info, err := cb.svc.provider.FetchUserInfo(ctx, cb.tokens.AccessToken)
	if err != nil {
		return err
	}

	userCtx, err := cb.svc.resolver.Resolve(ctx, info)
	if err != nil {
		return err
	}

	cb.result.User = userCtx
	cb.state = StateUserResolved
	return nil
}

// commitContext mints the authenticated session and publishes the user
// context under it.
func (cb *callback) commitContext(context.Context) error {
	sessionID := newSessionID()
	cb.svc.contexts.Set(sessionID, cb.result.User)

	cb.result.SessionID = sessionID
	cb.result.Tokens = cb.tokens
	cb.state = StateContextCommitted
	return nil
}
