package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/iurnickita/autosalon/internal/token/config"
)

// Token выпускает и проверяет JWT (HS256). В subject - email пользователя.
// Access и refresh подписываются разными ключами
type Token interface {
	NewAccess(email string) (string, error)
	NewRefresh(email string) (string, error)
	ParseAccess(tokenString string) (string, error)
	ParseRefresh(tokenString string) (string, error)
}

var ErrInvalidToken = errors.New("invalid token")

type token struct {
	cfg config.Config
	now func() time.Time
}

func NewToken(cfg config.Config) Token {
	return &token{cfg: cfg, now: time.Now}
}

func (t *token) NewAccess(email string) (string, error) {
	return t.sign(email, t.cfg.AccessSecret, t.cfg.AccessTTL)
}

func (t *token) NewRefresh(email string) (string, error) {
	return t.sign(email, t.cfg.RefreshSecret, t.cfg.RefreshTTL)
}

func (t *token) ParseAccess(tokenString string) (string, error) {
	return t.parse(tokenString, t.cfg.AccessSecret)
}

func (t *token) ParseRefresh(tokenString string) (string, error) {
	return t.parse(tokenString, t.cfg.RefreshSecret)
}

func (t *token) sign(email, secret string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (t *token) parse(tokenString, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	tok, err := parser.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
