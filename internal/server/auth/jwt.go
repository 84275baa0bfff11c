package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/libkeeper/internal/common"
	"github.com/dmitrijs2005/libkeeper/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the bearer's identity next to the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	Identity models.Identity `json:"sub_identity"`
}

// GenerateToken signs an HS256 token for identity. A zero validity issues
// a token without an expiry.
func GenerateToken(identity models.Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	rc := jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(now)}
	if validityDuration != 0 {
		rc.ExpiresAt = jwt.NewNumericDate(now.Add(validityDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: rc,
		Identity:         identity,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates tokenString and returns the identity it carries.
func ParseToken(tokenString string, secretKey []byte) (models.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, common.ErrTokenExpired
		}
		return models.Identity{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.Identity.Role == "" {
		return models.Identity{}, common.ErrInvalidToken
	}

	return claims.Identity, nil
}
