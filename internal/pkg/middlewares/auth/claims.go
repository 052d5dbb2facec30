package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"marketplace/internal/entities"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

type Claims struct {
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
	jwt.RegisteredClaims
}

// Resolver проверяет bearer-токены HS256 и превращает их в Actor.
type Resolver struct {
	secret []byte
	parser *jwt.Parser
}

func NewResolver(secret string) *Resolver {
	return &Resolver{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (r *Resolver) Resolve(authorization string) (entities.Actor, error) {
	raw, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return entities.Actor{}, ErrMissingToken
	}

	claims := &Claims{}
	_, err := r.parser.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (interface{}, error) {
		return r.secret, nil
	})
	if err != nil {
		return entities.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return entities.Actor{}, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	role, ok := entities.ParseActorRole(claims.Role)
	if !ok {
		return entities.Actor{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	return entities.Actor{
		ID:         claims.Subject,
		Role:       role,
		IsVerified: claims.Verified,
	}, nil
}

// Sign выпускает токен для актора, используется в тестах и служебных утилитах.
func (r *Resolver) Sign(actor entities.Actor, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = actor.ID
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             actor.Role.String(),
		Verified:         actor.IsVerified,
		RegisteredClaims: claims,
	})
	return token.SignedString(r.secret)
}
