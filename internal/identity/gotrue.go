package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lshigami/vidcert/config"
	"github.com/lshigami/vidcert/internal/model"
	"github.com/rs/zerolog/log"
)

type goTrueUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	CreatedAt    time.Time      `json:"created_at"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// goTrueAuthResponse covers both signup shapes: a session wrapping the user,
// or the bare user when confirmation is pending.
type goTrueAuthResponse struct {
	AccessToken string      `json:"access_token"`
	User        *goTrueUser `json:"user"`
	goTrueUser
}

type goTrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorCode        string `json:"error_code"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e goTrueError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

type goTrueProvider struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	verifier   *tokenVerifier
}

// NewGoTrueProvider verifies access tokens locally when SUPABASE_JWT_SECRET is
// set and falls back to GET /auth/v1/user otherwise.
func NewGoTrueProvider(cfg *config.Config) Provider {
	p := &goTrueProvider{
		baseURL:    cfg.Supabase.URL,
		anonKey:    cfg.Supabase.AnonKey,
		httpClient: &http.Client{Timeout: cfg.Metadata.ClientTimeout},
	}
	if cfg.Supabase.JWTSecret != "" {
		p.verifier = newTokenVerifier(cfg.Supabase.JWTSecret)
	}
	return p
}

func (p *goTrueProvider) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"username": username},
	}
	var resp goTrueAuthResponse
	if err := p.do(ctx, http.MethodPost, "/auth/v1/signup", "", body, &resp); err != nil {
		return nil, err
	}

	u := resp.User
	if u == nil {
		u = &resp.goTrueUser
	}
	if u.ID == "" {
		return nil, fmt.Errorf("%w: signup response has no user", ErrUnavailable)
	}
	return &AuthResult{
		User:                toUser(u),
		AccessToken:         resp.AccessToken,
		PendingVerification: resp.AccessToken == "",
	}, nil
}

func (p *goTrueProvider) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var resp goTrueAuthResponse
	err := p.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &resp)
	if err != nil {
		var perr *ProviderError
		if errors.As(err, &perr) && (perr.Status == http.StatusBadRequest || perr.Status == http.StatusUnauthorized) &&
			strings.Contains(strings.ToLower(perr.Message), "invalid") {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if resp.User == nil || resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response has no session", ErrUnavailable)
	}
	return &AuthResult{User: toUser(resp.User), AccessToken: resp.AccessToken}, nil
}

func (p *goTrueProvider) Session(ctx context.Context, accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, ErrUnauthorized
	}
	if p.verifier != nil {
		return p.verifier.verify(accessToken)
	}

	var u goTrueUser
	err := p.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, &u)
	if err != nil {
		var perr *ProviderError
		if errors.As(err, &perr) && (perr.Status == http.StatusUnauthorized || perr.Status == http.StatusForbidden) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	user := toUser(&u)
	return &user, nil
}

func (p *goTrueProvider) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	err := p.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
	var perr *ProviderError
	if errors.As(err, &perr) && perr.Status == http.StatusUnauthorized {
		// already signed out or expired
		return nil
	}
	return err
}

func (p *goTrueProvider) do(ctx context.Context, method, path, accessToken string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("apikey", p.anonKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Identity provider request failed")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		log.Error().Int("status", resp.StatusCode).Str("path", path).Msg("Identity provider returned server error")
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var gerr goTrueError
		_ = json.Unmarshal(raw, &gerr)
		msg := gerr.text()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		log.Warn().Int("status", resp.StatusCode).Str("path", path).Str("error_code", gerr.ErrorCode).Msg(msg)
		return &ProviderError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrUnavailable, path, err)
	}
	return nil
}

func toUser(u *goTrueUser) model.User {
	return model.User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  usernameFrom(u.UserMetadata),
		CreatedAt: u.CreatedAt,
	}
}

func usernameFrom(meta map[string]any) string {
	if name, ok := meta["username"].(string); ok && strings.TrimSpace(name) != "" {
		return name
	}
	return defaultUsername
}
