package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/vidcert/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAnonKey = "anon-key"

func newTestProvider(t *testing.T, handler http.HandlerFunc, jwtSecret string) Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Supabase.URL = srv.URL
	cfg.Supabase.AnonKey = testAnonKey
	cfg.Supabase.JWTSecret = jwtSecret
	cfg.Metadata.ClientTimeout = 5 * time.Second
	return NewGoTrueProvider(cfg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestGoTrueProvider_Register(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		response    any
		wantPending bool
		wantToken   string
		wantErr     func(t *testing.T, err error)
	}{
		{
			name:   "confirmation required returns bare user",
			status: http.StatusOK,
			response: map[string]any{
				"id":            "u-1",
				"email":         "ada@example.com",
				"created_at":    "2025-04-01T08:00:00Z",
				"user_metadata": map[string]any{"username": "ada"},
			},
			wantPending: true,
		},
		{
			name:   "autoconfirm returns session",
			status: http.StatusOK,
			response: map[string]any{
				"access_token": "tok",
				"user": map[string]any{
					"id":            "u-1",
					"email":         "ada@example.com",
					"created_at":    "2025-04-01T08:00:00Z",
					"user_metadata": map[string]any{"username": "ada"},
				},
			},
			wantToken: "tok",
		},
		{
			name:     "already registered",
			status:   http.StatusUnprocessableEntity,
			response: map[string]any{"code": 422, "error_code": "user_already_exists", "msg": "User already registered"},
			wantErr: func(t *testing.T, err error) {
				var perr *ProviderError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, "User already registered", perr.Message)
			},
		},
		{
			name:     "provider down",
			status:   http.StatusBadGateway,
			response: map[string]any{},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnavailable)
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/auth/v1/signup", r.URL.Path)
				assert.Equal(t, testAnonKey, r.Header.Get("apikey"))

				var body struct {
					Email    string            `json:"email"`
					Password string            `json:"password"`
					Data     map[string]string `json:"data"`
				}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "ada@example.com", body.Email)
				assert.Equal(t, "secret1", body.Password)
				assert.Equal(t, "ada", body.Data["username"])

				writeJSON(w, tt.status, tt.response)
			}, "")

			res, err := p.Register(context.Background(), "ada", "ada@example.com", "secret1")
			if tt.wantErr != nil {
				require.Error(t, err)
				tt.wantErr(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u-1", res.User.ID)
			assert.Equal(t, "ada", res.User.Username)
			assert.Equal(t, "ada@example.com", res.User.Email)
			assert.Equal(t, tt.wantPending, res.PendingVerification)
			assert.Equal(t, tt.wantToken, res.AccessToken)
		})
	}
}

func TestGoTrueProvider_Login(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/token", r.URL.Path)
			assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
			writeJSON(w, http.StatusOK, map[string]any{
				"access_token": "tok",
				"user":         map[string]any{"id": "u-1", "email": "ada@example.com"},
			})
		}, "")

		res, err := p.Login(context.Background(), "ada@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "tok", res.AccessToken)
		assert.Equal(t, "u-1", res.User.ID)
		assert.Equal(t, defaultUsername, res.User.Username)
		assert.False(t, res.PendingVerification)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_grant", "error_description": "Invalid login credentials"})
		}, "")

		_, err := p.Login(context.Background(), "ada@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("email not confirmed", func(t *testing.T) {
		t.Parallel()
		p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error_code": "email_not_confirmed", "msg": "Email not confirmed"})
		}, "")

		_, err := p.Login(context.Background(), "ada@example.com", "secret1")
		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "Email not confirmed", perr.Message)
	})
}

func TestGoTrueProvider_SessionRemote(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"msg": "invalid JWT"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":            "u-1",
			"email":         "ada@example.com",
			"user_metadata": map[string]any{"username": "ada"},
		})
	}, "")

	user, err := p.Session(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)

	_, err = p.Session(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = p.Session(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGoTrueProvider_SessionLocal(t *testing.T) {
	t.Parallel()

	const secret = "super-secret-jwt-key"
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}, secret)

	sign := func(t *testing.T, key string, method jwt.SigningMethod, exp time.Time) string {
		claims := accessClaims{
			Email:        "ada@example.com",
			UserMetadata: map[string]any{"username": "ada"},
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "u-1",
				ExpiresAt: jwt.NewNumericDate(exp),
			},
		}
		tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return tok
	}

	user, err := p.Session(context.Background(), sign(t, secret, jwt.SigningMethodHS256, time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = p.Session(context.Background(), sign(t, secret, jwt.SigningMethodHS256, time.Now().Add(-time.Minute)))
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = p.Session(context.Background(), sign(t, "another-secret", jwt.SigningMethodHS256, time.Now().Add(time.Hour)))
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = p.Session(context.Background(), sign(t, secret, jwt.SigningMethodHS512, time.Now().Add(time.Hour)))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGoTrueProvider_SignOut(t *testing.T) {
	t.Parallel()

	var calls int
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		if r.Header.Get("Authorization") == "Bearer expired" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"msg": "invalid JWT"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}, "")

	require.NoError(t, p.SignOut(context.Background(), "tok"))
	require.NoError(t, p.SignOut(context.Background(), "expired"))
	require.NoError(t, p.SignOut(context.Background(), ""))
	assert.Equal(t, 2, calls)
}
