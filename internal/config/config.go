package config

type Config interface {
	EnvConfig
	ProviderConfig
	CorsConfig

	// Validate reports the first missing startup parameter. The server must
	// not start when it returns an error.
	Validate() error
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDatabaseURL() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() []string
	GetAllowedMethods() []string
	GetAllowedHeaders() []string
}

// ProviderConfig carries the identity-provider parameters resolved once at
// startup. None of these have defaults.
type ProviderConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetAuthURL() string
	GetTokenURL() string
	GetRevocationURL() string
	GetUserInfoURL() string
	GetRedirectURL() string
	GetScopes() []string
}

type mainConfig struct {
	EnvVars
	Cors
	Provider
}

func New() Config {
	return mainConfig{}
}

func (c mainConfig) Validate() error {
	return c.Provider.Validate()
}
