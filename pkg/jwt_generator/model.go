package jwt_generator

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const IssuerDefault = "petcare-api"

const (
	// AccessTokenExpirationDuration is the whole lifetime of an access token.
	// There is no revocation list, expiry is the only invalidation mechanism.
	AccessTokenExpirationDuration = 24 * time.Hour

	// RefreshTokenByteLength is the entropy of an opaque refresh token
	// before hex encoding.
	RefreshTokenByteLength = 64
)

type Claims struct {
	jwt.RegisteredClaims
}

type Tokens struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
