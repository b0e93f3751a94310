package idp

import "errors"

var (
	ErrExchangeFailed      = errors.New("authorization code exchange failed")
	ErrMissingRefreshToken = errors.New("provider response missing refresh token")
	ErrRefreshFailed       = errors.New("access token refresh failed")
	ErrInvalidToken        = errors.New("invalid token")
	ErrUserInfoFetch       = errors.New("userinfo request failed")
)
