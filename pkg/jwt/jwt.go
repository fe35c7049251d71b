package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType represents the type of JWT token
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims represents the JWT claims
type Claims struct {
	AdminID     string    `json:"admin_id"`
	AccessLevel int       `json:"access_level"`
	TokenType   TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for an admin
func GenerateToken(adminID string, accessLevel int, tokenType TokenType, secret string, duration time.Duration) (string, error) {
	claims := Claims{
		AdminID:     adminID,
		AccessLevel: accessLevel,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// IsTokenValid checks if a token is valid and of the expected type
func IsTokenValid(tokenString string, secret string, expectedType TokenType) bool {
	claims, err := ValidateToken(tokenString, secret)
	if err != nil {
		return false
	}

	return claims.TokenType == expectedType
}
