package server

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-login-service/authflow"
	"github.com/jrsteele09/go-login-service/idp"
	"github.com/jrsteele09/go-login-service/sessions"
	"github.com/jrsteele09/go-login-service/users"
)

// httpStatus maps flow errors onto response codes: 401 for auth, CSRF and
// token failures, 404 for missing records, 500 for everything storage or
// config shaped.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, authflow.ErrCSRFMismatch),
		errors.Is(err, idp.ErrExchangeFailed),
		errors.Is(err, idp.ErrMissingRefreshToken),
		errors.Is(err, idp.ErrRefreshFailed),
		errors.Is(err, idp.ErrInvalidToken),
		errors.Is(err, idp.ErrUserInfoFetch):
		return http.StatusUnauthorized
	case errors.Is(err, sessions.ErrNotFound),
		errors.Is(err, users.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs the failure and answers with its status and message. The
// wrapped chain never contains token values, so logging err is safe.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatus(err)
	log.Error().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")
	http.Error(w, err.Error(), status)
}
