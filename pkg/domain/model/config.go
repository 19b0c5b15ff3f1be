package model

import (
	"log/slog"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
)

// BackendConfig holds the connection secrets of the identity/authorization backend
type BackendConfig struct {
	BaseURL    string
	ServiceKey string
}

// Validate checks that both secrets are present and the base URL is usable
func (c BackendConfig) Validate() error {
	if c.BaseURL == "" {
		return goerr.New("backend base URL is required", goerr.T(ErrTagSetup))
	}
	if c.ServiceKey == "" {
		return goerr.New("backend service role key is required", goerr.T(ErrTagSetup))
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return goerr.Wrap(err, "invalid backend base URL",
			goerr.V("url", c.BaseURL),
			goerr.T(ErrTagSetup))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return goerr.New("backend base URL must be an absolute http(s) URL",
			goerr.V("url", c.BaseURL),
			goerr.T(ErrTagSetup))
	}

	return nil
}

// LogValue returns structured log value without exposing the service key
func (c BackendConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", c.BaseURL),
		slog.Bool("has_service_key", c.ServiceKey != ""),
	)
}
