package apiclient

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenAudience = "platepal"
	tokenTTL      = 5 * time.Minute
)

// tokenSource signs short-lived HS256 bearer tokens with the shared API secret.
type tokenSource struct {
	secret []byte
	now    func() time.Time
}

func newTokenSource(secret string) *tokenSource {
	return &tokenSource{secret: []byte(secret), now: time.Now}
}

// Token generates a token valid for tokenTTL.
func (s *tokenSource) Token() (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		Audience:  jwt.ClaimStrings{tokenAudience},
	})
	return token.SignedString(s.secret)
}
