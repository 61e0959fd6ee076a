package auth

import (
	"errors"
	"time"

	"github.com/gharzo/engine/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role identifies the kind of dashboard user behind a token
type Role string

const (
	RoleLandlord Role = "landlord"
	RoleWorker   Role = "worker"
	RoleTenant   Role = "tenant"
)

// IsValid checks if the role is a valid value
func (r Role) IsValid() bool {
	return r == RoleLandlord || r == RoleWorker || r == RoleTenant
}

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingActorID   = errors.New("missing actor_id in claims")
	ErrInvalidRole      = errors.New("invalid role in claims")
)

// Claims represents custom JWT claims. Tokens are minted by the account
// service; this engine only verifies them.
type Claims struct {
	jwt.RegisteredClaims
	ActorID string `json:"actor_id"`
	Name    string `json:"name,omitempty"`
	Role    Role   `json:"role"`
}

// Actor returns the actor ID parsed as a UUID
func (c *Claims) Actor() (uuid.UUID, error) {
	id, err := uuid.Parse(c.ActorID)
	if err != nil {
		return uuid.Nil, ErrInvalidClaims
	}
	return id, nil
}

// TokenVerifier validates bearer tokens issued by the account service
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier creates a new TokenVerifier
func NewTokenVerifier(cfg config.JWTConfig) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// Verify validates a token string and returns its claims
func (v *TokenVerifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, ErrInvalidClaims
	}
	if claims.ActorID == "" {
		return nil, ErrMissingActorID
	}
	if !claims.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	return claims, nil
}

// Mint signs a token for the given actor. Production tokens come from the
// account service; this exists for local development and tests.
func (v *TokenVerifier) Mint(actorID uuid.UUID, name string, role Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    v.issuer,
			Subject:   actorID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		ActorID: actorID.String(),
		Name:    name,
		Role:    role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
