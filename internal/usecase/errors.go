package usecase

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
	ErrNoFilePart         = errors.New("No file part")
	ErrNoSelectedFile     = errors.New("No selected file")
	ErrUnsupportedFile    = errors.New("only .pdf files are accepted")
	ErrFileTooLarge       = errors.New("file too large")
	ErrNotFound           = errors.New("analysis not found")
	ErrHistoryUnavailable = errors.New("analysis history unavailable")
)
