package user

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"petcare-api/pkg/cerror"
	"petcare-api/pkg/jwt_generator"
)

// ContextKeyUserId is the fiber Locals key carrying the authenticated
// user id for downstream handlers.
const ContextKeyUserId = "userId"

// NewAuthMiddleware verifies the bearer access token of an inbound request
// and attaches the decoded user id to the request locals. Missing, malformed,
// tampered and expired tokens all answer with 401.
func NewAuthMiddleware(jwtGenerator jwt_generator.JwtGenerator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authorizationHeader := ctx.Get(fiber.HeaderAuthorization)
		if authorizationHeader == "" {
			cerr := cerror.ErrorUnauthorized
			return &cerr
		}

		headerParts := strings.Split(authorizationHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			cerr := cerror.ErrorUnauthorized
			return &cerr
		}

		claims, err := jwtGenerator.VerifyAccessToken(headerParts[1])
		if err != nil {
			cerr := cerror.ErrorUnauthorized
			cerr.LogFields = []zap.Field{
				zap.Error(err),
			}
			return &cerr
		}

		ctx.Locals(ContextKeyUserId, claims.Subject)
		return ctx.Next()
	}
}
