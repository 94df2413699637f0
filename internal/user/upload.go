package user

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"petcare-api/pkg/cerror"
)

// MaxProfilePhotoSize caps uploads at 5MB.
const MaxProfilePhotoSize = 5 * 1024 * 1024

const uploadsUrlPrefix = "/uploads/"

// PhotoStore keeps uploaded profile photos on local disk and serves them
// under /uploads/.
type PhotoStore struct {
	dir string
}

func NewPhotoStore(dir string) (*PhotoStore, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, err
	}

	return &PhotoStore{dir: dir}, nil
}

// Save validates and persists an uploaded photo, returning the public
// /uploads/ path to store on the user.
func (p *PhotoStore) Save(ctx *fiber.Ctx, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxProfilePhotoSize {
		return "", cerror.NewError(
			fiber.StatusBadRequest,
			"profile photo exceeds the 5MB limit",
		).SetSeverity(zapcore.WarnLevel)
	}

	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return "", cerror.NewError(
			fiber.StatusBadRequest,
			"not an image, please upload an image",
		).SetSeverity(zapcore.WarnLevel)
	}

	fileName := fmt.Sprintf(
		"profilePhoto-%s%s",
		uuid.New().String(),
		filepath.Ext(fileHeader.Filename),
	)

	err := ctx.SaveFile(fileHeader, filepath.Join(p.dir, fileName))
	if err != nil {
		return "", cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while save profile photo",
			zap.Error(err),
		)
	}

	return uploadsUrlPrefix + fileName, nil
}

// Remove deletes a previously uploaded photo. Paths outside /uploads/
// (the gravatar placeholder included) are left alone.
func (p *PhotoStore) Remove(photoPath string) error {
	if !strings.HasPrefix(photoPath, uploadsUrlPrefix) {
		return nil
	}

	err := os.Remove(filepath.Join(p.dir, filepath.Base(photoPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
