package handler

import (
	"errors"
	"strconv"

	"resume-analyzer/internal/delivery/http/dto"
	"resume-analyzer/internal/delivery/http/middleware"
	"resume-analyzer/internal/domain/analysis"
	"resume-analyzer/internal/pkg/response"
	"resume-analyzer/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AnalysisHandler struct {
	uc usecase.ResumeUsecase
}

func NewAnalysisHandler(uc usecase.ResumeUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// RegisterRoutes mounts the upload and history endpoints on r. When guard is
// set it runs before the history handlers only.
func (h *AnalysisHandler) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	if r == nil {
		return
	}
	r.Post("/analyses", h.Create)
	if guard != nil {
		r.Get("/analyses", guard, h.List)
		r.Get("/analyses/:id", guard, h.Get)
		return
	}
	r.Get("/analyses", h.List)
	r.Get("/analyses/:id", h.Get)
}

func (h *AnalysisHandler) Create(c fiber.Ctx) error {
	fh, err := readUpload(c)
	if err != nil {
		return middleware.NewAppError(uploadErrorStatus(err), err.Error(), nil, err)
	}
	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable upload", nil, err)
	}
	defer f.Close()

	sub, err := h.uc.Submit(c.Context(), usecase.Upload{Filename: fh.Filename, Content: f})
	if err != nil {
		return middleware.NewAppError(uploadErrorStatus(err), err.Error(), nil, err)
	}

	res := dto.NewAnalysisResponse(sub.ID, sub.OriginalFilename, sub.Fingerprint, sub.Cached, sub.CreatedAt, sub.Outcome)
	if !sub.Outcome.OK() {
		return middleware.NewAppError(kindStatus(sub.Outcome.Err.Kind), res.Error.Message, res, sub.Outcome.Err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, res)
}

func (h *AnalysisHandler) List(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", nil, err)
	}

	recs, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return mapHistoryError(err)
	}

	items := make([]dto.AnalysisResponse, 0, len(recs))
	for _, r := range recs {
		items = append(items, dto.FromRecord(r))
	}
	if limit == 0 {
		limit = 20
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AnalysisListResponse{Items: items, Limit: limit, Offset: offset})
}

func (h *AnalysisHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid analysis id", nil, err)
	}
	rec, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapHistoryError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRecord(rec))
}

func kindStatus(k analysis.Kind) int {
	switch k {
	case analysis.KindExtraction:
		return fiber.StatusUnprocessableEntity
	case analysis.KindNotTrained:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func mapHistoryError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrHistoryUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Analysis history unavailable", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Analysis not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}

func queryInt(c fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
