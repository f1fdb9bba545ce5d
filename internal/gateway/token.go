package gateway

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("token is not a JWT")

// TokenInfo is what the client can learn from its access token without
// verifying it. Verification is the backend's job.
type TokenInfo struct {
	Subject   string
	Name      string
	ExpiresAt time.Time
}

func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// DisplayName prefers a human name claim over the subject.
func (t TokenInfo) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Subject
}

// InspectToken reads the claims of a JWT access token. Opaque tokens return
// ErrMalformedToken and are otherwise still usable.
func InspectToken(raw string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("inspect token: %w", ErrMalformedToken)
	}

	var info TokenInfo
	info.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	for _, key := range []string{"name", "preferred_username", "email"} {
		if s, ok := claims[key].(string); ok && s != "" {
			info.Name = s
			break
		}
	}
	return info, nil
}
