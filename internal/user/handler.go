package user

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"petcare-api/pkg/cerror"
	"petcare-api/pkg/jwt_generator"
	"petcare-api/pkg/logger"
	"petcare-api/pkg/server"
)

type handler struct {
	userService  Service
	photoStore   *PhotoStore
	jwtGenerator jwt_generator.JwtGenerator
	validate     *validator.Validate
}

func NewHandler(
	userService Service,
	photoStore *PhotoStore,
	jwtGenerator jwt_generator.JwtGenerator,
) server.Handler {
	return &handler{
		userService:  userService,
		photoStore:   photoStore,
		jwtGenerator: jwtGenerator,
		validate:     validator.New(),
	}
}

func (h *handler) RegisterRoutes(app *fiber.App) {
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)
	app.Post("/auth/refresh", h.RefreshAccessToken)
	app.Put("/auth/profile", NewAuthMiddleware(h.jwtGenerator), h.UpdateProfile)
}

func (h *handler) Register(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "register"))
	logger.InjectContext(ctx.Context(), log)

	var payload RegisterPayload
	err := ctx.BodyParser(&payload)
	if err != nil {
		cerr := cerror.ErrorBadRequest
		cerr.LogFields = []zap.Field{
			zap.Error(err),
		}
		return &cerr
	}

	err = h.validate.Struct(&payload)
	if err != nil {
		cerr := cerror.ErrorBadRequest
		cerr.LogFields = []zap.Field{
			zap.Error(err),
		}
		return &cerr
	}

	fileHeader, err := ctx.FormFile("profilePhoto")
	if err == nil && fileHeader != nil {
		payload.ProfilePhoto, err = h.photoStore.Save(ctx, fileHeader)
		if err != nil {
			return err
		}
	}

	authResponse, err := h.userService.Register(ctx.Context(), &payload)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusCreated).
		JSON(authResponse)
}

func (h *handler) Login(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "login"))
	logger.InjectContext(ctx.Context(), log)

	var payload LoginPayload
	err := ctx.BodyParser(&payload)
	if err != nil {
		cerr := cerror.ErrorBadRequest
		cerr.LogFields = []zap.Field{
			zap.Error(err),
		}
		return &cerr
	}

	err = h.validate.Struct(&payload)
	if err != nil {
		// an unparsable login attempt reveals nothing about accounts
		cerr := cerror.ErrorInvalidCredentials
		return &cerr
	}

	authResponse, err := h.userService.Login(ctx.Context(), &payload)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(authResponse)
}

func (h *handler) RefreshAccessToken(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "refreshAccessToken"))
	logger.InjectContext(ctx.Context(), log)

	var payload RefreshTokenPayload
	err := ctx.BodyParser(&payload)
	if err != nil || payload.RefreshToken == "" {
		cerr := cerror.ErrorRefreshTokenRequired
		return &cerr
	}

	accessToken, err := h.userService.RefreshAccessToken(ctx.Context(), payload.RefreshToken)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(&AccessTokenResponse{
			Token: accessToken,
		})
}

func (h *handler) UpdateProfile(ctx *fiber.Ctx) error {
	userId, _ := ctx.Locals(ContextKeyUserId).(string)

	log := logger.FromContext(ctx.Context()).
		With(
			zap.String("eventName", "updateProfile"),
			zap.String("userId", userId),
		)
	logger.InjectContext(ctx.Context(), log)

	var payload UpdateProfilePayload
	err := ctx.BodyParser(&payload)
	if err != nil && err != fiber.ErrUnprocessableEntity {
		cerr := cerror.ErrorBadRequest
		cerr.LogFields = []zap.Field{
			zap.Error(err),
		}
		return &cerr
	}

	fileHeader, err := ctx.FormFile("profilePhoto")
	if err == nil && fileHeader != nil {
		payload.ProfilePhoto, err = h.photoStore.Save(ctx, fileHeader)
		if err != nil {
			return err
		}
	}

	updatedUser, err := h.userService.UpdateProfile(ctx.Context(), userId, &payload)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(&ProfileResponse{
			User: updatedUser,
		})
}
