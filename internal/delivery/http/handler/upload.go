package handler

import (
	"errors"
	"mime/multipart"

	"resume-analyzer/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const uploadField = "file"

// readUpload returns the uploaded file part. A part sent with an empty
// filename arrives as a plain form value and is reported as
// ErrNoSelectedFile; no part at all is ErrNoFilePart.
func readUpload(c fiber.Ctx) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(uploadField)
	if err == nil {
		if fh.Filename == "" {
			return nil, usecase.ErrNoSelectedFile
		}
		return fh, nil
	}
	if form, ferr := c.MultipartForm(); ferr == nil {
		if _, ok := form.Value[uploadField]; ok {
			return nil, usecase.ErrNoSelectedFile
		}
	}
	return nil, usecase.ErrNoFilePart
}

func uploadErrorStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrNoFilePart),
		errors.Is(err, usecase.ErrNoSelectedFile),
		errors.Is(err, usecase.ErrUnsupportedFile),
		errors.Is(err, usecase.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	default:
		return fiber.StatusInternalServerError
	}
}
