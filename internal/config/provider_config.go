package config

import (
	"fmt"
	"strings"
)

const (
	clientIDEnvVar      = "OAUTH_CLIENT_ID"
	clientSecretEnvVar  = "OAUTH_CLIENT_SECRET"
	authURLEnvVar       = "OAUTH_AUTH_URI"
	tokenURLEnvVar      = "OAUTH_TOKEN_URI"
	revocationURLEnvVar = "OAUTH_REVOCATION_URI"
	userInfoURLEnvVar   = "OAUTH_USERINFO_URI"
	redirectURLEnvVar   = "OAUTH_REDIRECT_URI"
	scopesEnvVar        = "OAUTH_SCOPES"
)

type Provider struct{}

var _ ProviderConfig = Provider{}

func (Provider) GetClientID() string {
	return GetEnv(clientIDEnvVar, "")
}

func (Provider) GetClientSecret() string {
	return GetEnv(clientSecretEnvVar, "")
}

func (Provider) GetAuthURL() string {
	return GetEnv(authURLEnvVar, "")
}

func (Provider) GetTokenURL() string {
	return GetEnv(tokenURLEnvVar, "")
}

func (Provider) GetRevocationURL() string {
	return GetEnv(revocationURLEnvVar, "")
}

func (Provider) GetUserInfoURL() string {
	return GetEnv(userInfoURLEnvVar, "")
}

func (Provider) GetRedirectURL() string {
	return GetEnv(redirectURLEnvVar, "")
}

// GetScopes returns the requested scopes as a list. The env var holds a
// space-separated value, matching how scopes appear on the wire.
func (Provider) GetScopes() []string {
	scopes := GetEnv(scopesEnvVar, "")
	if scopes == "" {
		return nil
	}
	return strings.Fields(scopes)
}

// Validate checks that every provider parameter is present. The first missing
// variable is reported by name so deployments can be fixed without guesswork.
func (p Provider) Validate() error {
	required := []struct {
		envVar string
		value  string
	}{
		{clientIDEnvVar, p.GetClientID()},
		{clientSecretEnvVar, p.GetClientSecret()},
		{authURLEnvVar, p.GetAuthURL()},
		{tokenURLEnvVar, p.GetTokenURL()},
		{revocationURLEnvVar, p.GetRevocationURL()},
		{userInfoURLEnvVar, p.GetUserInfoURL()},
		{redirectURLEnvVar, p.GetRedirectURL()},
	}
	for _, param := range required {
		if param.value == "" {
			return fmt.Errorf("%w: %s is not defined in the environment", ErrMissingParameter, param.envVar)
		}
	}
	if len(p.GetScopes()) == 0 {
		return fmt.Errorf("%w: %s is not defined in the environment", ErrMissingParameter, scopesEnvVar)
	}
	return nil
}
