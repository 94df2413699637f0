//go:build unit

package user

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-api/pkg/cerror"
	"petcare-api/pkg/config"
	"petcare-api/pkg/jwt_generator"
)

func TestNewAuthMiddleware(t *testing.T) {
	jwtGenerator, err := jwt_generator.NewJwtGenerator(TestJwtConfig)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: cerror.Middleware,
	})
	app.Get("/protected", NewAuthMiddleware(jwtGenerator), func(ctx *fiber.Ctx) error {
		userId, _ := ctx.Locals(ContextKeyUserId).(string)
		return ctx.SendString(userId)
	})

	t.Run("valid token should pass and expose the user id", func(t *testing.T) {
		accessToken, err := jwtGenerator.GenerateAccessToken(TestUserId)
		require.NoError(t, err)

		request := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
		request.Header.Set(fiber.HeaderAuthorization, fmt.Sprintf("Bearer %s", accessToken))

		response, err := app.Test(request)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, response.StatusCode)

		responseBody, err := io.ReadAll(response.Body)
		require.NoError(t, err)
		assert.Equal(t, TestUserId, string(responseBody))
	})

	t.Run("missing authorization header should return unauthorized", func(t *testing.T) {
		request := httptest.NewRequest(fiber.MethodGet, "/protected", nil)

		response, err := app.Test(request)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, response.StatusCode)
	})

	t.Run("header without bearer scheme should return unauthorized", func(t *testing.T) {
		accessToken, err := jwtGenerator.GenerateAccessToken(TestUserId)
		require.NoError(t, err)

		request := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
		request.Header.Set(fiber.HeaderAuthorization, accessToken)

		response, err := app.Test(request)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, response.StatusCode)
	})

	t.Run("tampered token should return unauthorized", func(t *testing.T) {
		accessToken, err := jwtGenerator.GenerateAccessToken(TestUserId)
		require.NoError(t, err)

		tampered := []byte(accessToken)
		tampered[len(tampered)-1] ^= 0x01

		request := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
		request.Header.Set(fiber.HeaderAuthorization, fmt.Sprintf("Bearer %s", tampered))

		response, err := app.Test(request)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, response.StatusCode)
	})

	t.Run("expired token should return unauthorized", func(t *testing.T) {
		expiredToken := signExpiredToken(t, TestJwtConfig.Secret)

		request := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
		request.Header.Set(fiber.HeaderAuthorization, fmt.Sprintf("Bearer %s", expiredToken))

		response, err := app.Test(request)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, response.StatusCode)
	})

	t.Run("token signed with another secret should return unauthorized", func(t *testing.T) {
		foreignGenerator, err := jwt_generator.NewJwtGenerator(config.JwtConfig{
			Secret: []byte("another-signing-secret"),
		})
		require.NoError(t, err)

		accessToken, err := foreignGenerator.GenerateAccessToken(TestUserId)
		require.NoError(t, err)

		request := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
		request.Header.Set(fiber.HeaderAuthorization, fmt.Sprintf("Bearer %s", accessToken))

		response, err := app.Test(request)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, response.StatusCode)
	})
}

func signExpiredToken(t *testing.T, secret []byte) string {
	t.Helper()

	issuedAt := time.Now().UTC().Add(-48 * time.Hour)
	claims := jwt_generator.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    jwt_generator.IssuerDefault,
			Subject:   TestUserId,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	require.NoError(t, err)

	return signedToken
}
