package endpoint

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2/clientcredentials"
)

// AuthConfig is the optional "auth" block of an endpoint's options. It
// resolves to an Authorization header applied alongside the static headers.
type AuthConfig struct {
	// Type selects the scheme: "basic", "bearer", or "oauth2"
	// (client credentials grant).
	Type string

	// Username and Password feed basic auth.
	Username string
	Password string

	// Token feeds bearer auth verbatim.
	Token string

	// TokenURL, ClientID, ClientSecret, and Scopes feed the oauth2
	// client-credentials flow.
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// Auth extracts the endpoint's auth block, if any.
func (e Endpoint) Auth() (AuthConfig, bool) {
	raw, ok := e.Options["auth"].(map[string]any)
	if !ok {
		return AuthConfig{}, false
	}

	cfg := AuthConfig{
		Type:         stringOption(raw, "type"),
		Username:     stringOption(raw, "username"),
		Password:     stringOption(raw, "password"),
		Token:        stringOption(raw, "token"),
		TokenURL:     stringOption(raw, "token_url"),
		ClientID:     stringOption(raw, "client_id"),
		ClientSecret: stringOption(raw, "client_secret"),
	}
	if scopes, ok := raw["scopes"].([]any); ok {
		for _, s := range scopes {
			cfg.Scopes = append(cfg.Scopes, fmt.Sprint(s))
		}
	}
	return cfg, true
}

// AuthorizationHeader resolves the endpoint's auth block to an Authorization
// header value. Endpoints without an auth block return the empty string.
func (e Endpoint) AuthorizationHeader(ctx context.Context) (string, error) {
	cfg, ok := e.Auth()
	if !ok {
		return "", nil
	}

	switch cfg.Type {
	case "":
		return "", nil
	case "basic":
		if cfg.Username == "" {
			return "", fmt.Errorf("basic auth requires a username")
		}
		creds := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
		return "Basic " + creds, nil
	case "bearer":
		if cfg.Token == "" {
			return "", fmt.Errorf("bearer auth requires a token")
		}
		return "Bearer " + cfg.Token, nil
	case "oauth2":
		if cfg.TokenURL == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
			return "", fmt.Errorf("oauth2 auth requires token_url, client_id, and client_secret")
		}
		conf := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		token, err := conf.Token(ctx)
		if err != nil {
			return "", fmt.Errorf("oauth2 client_credentials flow failed: %w", err)
		}
		return "Bearer " + token.AccessToken, nil
	default:
		return "", fmt.Errorf("unknown auth type %q (supported: basic, bearer, oauth2)", cfg.Type)
	}
}

func stringOption(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}
