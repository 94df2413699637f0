package cerror

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"petcare-api/pkg/logger"
)

// Middleware is the fiber error handler. Custom errors are logged with their
// carried severity and serialized as a short JSON message; anything else is
// logged and masked as an internal server error so internals never leak.
func Middleware(ctx *fiber.Ctx, err error) error {
	log := logger.FromContext(ctx.Context())

	var cerr *CustomError
	if !errors.As(err, &cerr) {
		log.Desugar().Error(err.Error())
		return ctx.
			Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "server error"})
	}

	logWithFields := log.Desugar()
	for _, field := range cerr.LogFields {
		logWithFields = logWithFields.With(field)
	}
	logWithFields.Log(cerr.LogSeverity, cerr.LogMessage)

	return ctx.
		Status(cerr.HttpStatusCode).
		JSON(fiber.Map{"message": cerr.Message})
}
