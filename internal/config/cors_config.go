package config

import "strings"

type Cors struct{}

var _ CorsConfig = Cors{}

// GetAllowedOrigins defaults to a wildcard; set CORS_ALLOWED_ORIGINS to a
// comma-separated list to restrict it.
func (Cors) GetAllowedOrigins() []string {
	origins := GetEnv("CORS_ALLOWED_ORIGINS", "*")
	return splitAndTrim(origins)
}

func (Cors) GetAllowedMethods() []string {
	return []string{"GET", "POST", "OPTIONS"}
}

func (Cors) GetAllowedHeaders() []string {
	return []string{"Content-Type", "Authorization"}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
