package user

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// IssueToken signs a session token for the user with the configured TTL.
func IssueToken(secret []byte, u User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
