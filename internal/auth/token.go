// internal/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer is the iss claim of every API token.
const TokenIssuer = "colab"

// ErrInvalidToken wraps every token rejection.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the user an API token speaks for.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// TokenManager signs and checks the HS256 bearer tokens of the JSON API.
type TokenManager struct {
	secret       []byte
	expiryPeriod time.Duration
	parser       *jwt.Parser
}

func NewTokenManager(secret string, expiryPeriod time.Duration) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		expiryPeriod: expiryPeriod,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(TokenIssuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// claims puts the user id in the subject; the username travels alongside
// for logging.
type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Generate issues a token for the given user.
func (tm *TokenManager) Generate(id Identity) (string, error) {
	now := time.Now()
	c := claims{
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   id.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiryPeriod)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(tm.secret)
}

// Validate checks the signature, issuer and expiry of tokenString and
// returns the identity it was issued for.
func (tm *TokenManager) Validate(tokenString string) (Identity, error) {
	var c claims
	_, err := tm.parser.ParseWithClaims(tokenString, &c, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil || userID == uuid.Nil {
		return Identity{}, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	return Identity{UserID: userID, Username: c.Username}, nil
}
