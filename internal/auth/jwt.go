package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"colvote.com/internal/model"
)

// Claims is the payload of every issued token. The claims are trusted for the
// whole token lifetime; only the revocation list can invalidate them earlier.
type Claims struct {
	UserID    uint       `json:"user_id"`
	Colegiado string     `json:"colegiado"`
	Role      model.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for the user, valid for ttl from now.
// The jti claim keys the revocation list.
func IssueToken(secret []byte, ttl time.Duration, user *model.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:    user.ID,
		Colegiado: user.Colegiado,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Colegiado,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies the signature and validity window and returns the
// embedded claims. Malformed, forged and expired tokens all fail here.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
