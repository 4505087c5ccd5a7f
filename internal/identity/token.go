package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/vidcert/internal/model"
)

type accessClaims struct {
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

type tokenVerifier struct {
	secret []byte
	now    func() time.Time
}

func newTokenVerifier(secret string) *tokenVerifier {
	return &tokenVerifier{secret: []byte(secret), now: time.Now}
}

func (v *tokenVerifier) verify(token string) (*model.User, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(v.now))
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", ErrUnauthorized)
		}
		return nil, ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, ErrUnauthorized
	}

	return &model.User{
		ID:       claims.Subject,
		Email:    claims.Email,
		Username: usernameFrom(claims.UserMetadata),
	}, nil
}
