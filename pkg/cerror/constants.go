package cerror

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap/zapcore"
)

// Predeclared errors are values, not pointers, so callers can copy one
// and attach log fields without mutating the shared declaration.
var (
	ErrorBadRequest = CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Message:        "malformed request body",
		LogMessage:     "malformed request body or query parameter",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorUserAlreadyExists = CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Message:        "user already exists",
		LogMessage:     "user already exists",
		LogSeverity:    zapcore.WarnLevel,
	}

	// ErrorInvalidCredentials is returned both for an unknown email and for a
	// password mismatch, so a caller cannot probe which accounts exist.
	ErrorInvalidCredentials = CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Message:        "invalid credentials",
		LogMessage:     "invalid credentials",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorRefreshTokenRequired = CustomError{
		HttpStatusCode: fiber.StatusBadRequest,
		Message:        "refresh token is required",
		LogMessage:     "refresh token is absent from request",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorInvalidRefreshToken = CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Message:        "invalid refresh token",
		LogMessage:     "no user holds the claimed refresh token",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorUnauthorized = CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		Message:        "authorization token missing or invalid",
		LogMessage:     "missing, malformed or expired access token",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorUserNotFound = CustomError{
		HttpStatusCode: fiber.StatusNotFound,
		Message:        "user not found",
		LogMessage:     "user not found",
		LogSeverity:    zapcore.WarnLevel,
	}
)
