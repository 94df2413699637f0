package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"petcare-api/pkg/cerror"
	"petcare-api/pkg/jwt_generator"
	"petcare-api/pkg/logger"
)

type Service interface {
	Register(ctx context.Context, payload *RegisterPayload) (*AuthResponse, error)
	Login(ctx context.Context, payload *LoginPayload) (*AuthResponse, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	UpdateProfile(ctx context.Context, userId string, payload *UpdateProfilePayload) (*User, error)
}

type service struct {
	userRepository Repository
	jwtGenerator   jwt_generator.JwtGenerator
	photoStore     *PhotoStore
}

func NewService(
	userRepository Repository,
	jwtGenerator jwt_generator.JwtGenerator,
	photoStore *PhotoStore,
) Service {
	return &service{
		userRepository: userRepository,
		jwtGenerator:   jwtGenerator,
		photoStore:     photoStore,
	}
}

func (s *service) Register(ctx context.Context, payload *RegisterPayload) (*AuthResponse, error) {
	var err error

	var hashedPassword []byte
	hashedPassword, err = bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate hash from password",
			zap.Error(err),
		)
	}

	profilePhoto := payload.ProfilePhoto
	if profilePhoto == "" {
		profilePhoto = DefaultProfilePhoto
	}

	var refreshToken string
	refreshToken, err = s.jwtGenerator.GenerateRefreshToken()
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate refresh token",
			zap.Error(err),
		)
	}

	userDocument := &Document{
		Id:           uuid.New().String(),
		Name:         payload.Name,
		Email:        payload.Email,
		Password:     string(hashedPassword),
		Location:     payload.Location,
		ProfilePhoto: profilePhoto,
		Role:         RoleUser,
		RefreshToken: refreshToken,
		CreatedAt:    time.Now().UTC().Unix(),
	}

	var userId string
	userId, err = s.userRepository.InsertUser(ctx, userDocument)
	if err != nil {
		return nil, err
	}

	var accessToken string
	accessToken, err = s.jwtGenerator.GenerateAccessToken(userId)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate access token",
			zap.Error(err),
		)
	}

	return &AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         userDocument.PublicView(),
	}, nil
}

func (s *service) Login(ctx context.Context, payload *LoginPayload) (*AuthResponse, error) {
	userDocument, err := s.userRepository.FindUserWithEmail(ctx, payload.Email)
	if err != nil {
		// an unknown email answers exactly like a wrong password
		var cerr *cerror.CustomError
		if errors.As(err, &cerr) && cerr.HttpStatusCode == fiber.StatusNotFound {
			invalidCredentials := cerror.ErrorInvalidCredentials
			return nil, &invalidCredentials
		}

		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(userDocument.Password), []byte(payload.Password))
	if err != nil {
		invalidCredentials := cerror.ErrorInvalidCredentials
		return nil, &invalidCredentials
	}

	var accessToken string
	accessToken, err = s.jwtGenerator.GenerateAccessToken(userDocument.Id)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate access token",
			zap.Error(err),
		)
	}

	var refreshToken string
	refreshToken, err = s.jwtGenerator.GenerateRefreshToken()
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate refresh token",
			zap.Error(err),
		)
	}

	// overwrites any previously issued refresh token, an earlier
	// session loses its refresh capability from here on
	err = s.userRepository.UpdateUserById(ctx, userDocument.Id, &DocumentUpdate{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         userDocument.PublicView(),
	}, nil
}

// RefreshAccessToken exchanges a stored refresh token for a fresh access
// token. The refresh token itself is not rotated, it stays valid until the
// next login supersedes it.
func (s *service) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	userDocument, err := s.userRepository.FindUserWithRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	var accessToken string
	accessToken, err = s.jwtGenerator.GenerateAccessToken(userDocument.Id)
	if err != nil {
		return "", cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate access token",
			zap.Error(err),
		)
	}

	return accessToken, nil
}

func (s *service) UpdateProfile(
	ctx context.Context,
	userId string,
	payload *UpdateProfilePayload,
) (*User, error) {
	userDocument, err := s.userRepository.FindUserWithId(ctx, userId)
	if err != nil {
		return nil, err
	}

	update := &DocumentUpdate{
		Name:     payload.Name,
		Location: payload.Location,
	}

	if payload.ProfilePhoto != "" {
		if userDocument.ProfilePhoto != "" && !strings.Contains(userDocument.ProfilePhoto, "gravatar.com") {
			removeErr := s.photoStore.Remove(userDocument.ProfilePhoto)
			if removeErr != nil {
				logger.FromContext(ctx).Warnw(
					"failed to remove previous profile photo",
					zap.Error(removeErr),
				)
			}
		}
		update.ProfilePhoto = payload.ProfilePhoto
	}

	err = s.userRepository.UpdateUserById(ctx, userId, update)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		userDocument.Name = update.Name
	}
	if update.Location != "" {
		userDocument.Location = update.Location
	}
	if update.ProfilePhoto != "" {
		userDocument.ProfilePhoto = update.ProfilePhoto
	}

	return userDocument.PublicView(), nil
}
