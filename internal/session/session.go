// Package session resolves who is making a request. Browsers carry the access
// token in a signed cookie; API clients send it as a Bearer token.
package session

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/lshigami/vidcert/config"
	"github.com/lshigami/vidcert/internal/dto"
	"github.com/lshigami/vidcert/internal/identity"
	"github.com/lshigami/vidcert/internal/model"
	"github.com/lshigami/vidcert/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	cookieName    = "vidcert_session"
	tokenValueKey = "access_token"
	stateKey      = "vidcert.session"
	cookieMaxAge  = 7 * 24 * 60 * 60

	LoginPath = "/login"
)

// State is the signed-in user for the current request.
type State struct {
	User        model.User
	AccessToken string
}

type Manager struct {
	store *sessions.CookieStore
	auth  service.AuthService
}

func NewManager(cfg *config.Config, auth service.AuthService) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.Server.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   cfg.Server.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, auth: auth}
}

// Resolve attaches a State to the context when the request carries a token the
// identity provider accepts. A rejected cookie token is cleared; an
// unreachable provider leaves the request anonymous without touching the cookie.
func (m *Manager) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := bearerToken(c.Request), false
		if token == "" {
			token = m.cookieToken(c.Request)
			fromCookie = token != ""
		}
		if token == "" {
			c.Next()
			return
		}

		user, err := m.auth.CurrentUser(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(stateKey, &State{User: *user, AccessToken: token})
		case errors.Is(err, identity.ErrUnauthorized):
			if fromCookie {
				if err := m.Clear(c); err != nil {
					log.Warn().Err(err).Msg("Failed to clear rejected session cookie")
				}
			}
		default:
			log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Could not restore session")
		}
		c.Next()
	}
}

// SignIn stores the access token in the session cookie.
func (m *Manager) SignIn(c *gin.Context, accessToken string) error {
	sess, _ := m.store.Get(c.Request, cookieName)
	sess.Values[tokenValueKey] = accessToken
	sess.Options.MaxAge = cookieMaxAge
	return sess.Save(c.Request, c.Writer)
}

// Clear expires the session cookie and drops any State from the context.
func (m *Manager) Clear(c *gin.Context) error {
	sess, _ := m.store.Get(c.Request, cookieName)
	delete(sess.Values, tokenValueKey)
	sess.Options.MaxAge = -1
	c.Set(stateKey, (*State)(nil))
	return sess.Save(c.Request, c.Writer)
}

func (m *Manager) cookieToken(r *http.Request) string {
	sess, err := m.store.Get(r, cookieName)
	if err != nil {
		log.Debug().Err(err).Msg("Ignoring undecodable session cookie")
		return ""
	}
	token, _ := sess.Values[tokenValueKey].(string)
	return token
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// FromContext returns the resolved State or nil for anonymous requests.
func FromContext(c *gin.Context) *State {
	v, ok := c.Get(stateKey)
	if !ok {
		return nil
	}
	st, _ := v.(*State)
	return st
}

// RequireUser rejects anonymous API requests with 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if FromContext(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Sign in required"})
			return
		}
		c.Next()
	}
}

// RequirePageUser sends anonymous browsers to the login page.
func RequirePageUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if FromContext(c) == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
