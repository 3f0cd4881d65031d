package handler

import (
	"resume-analyzer/internal/delivery/http/dto"
	"resume-analyzer/internal/domain/feature"
	"resume-analyzer/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type LexiconHandler struct {
	body dto.LexiconResponse
}

// NewLexiconHandler snapshots the extractor's lexicon and schema; both are
// immutable for the life of the process.
func NewLexiconHandler(ext *feature.Extractor) *LexiconHandler {
	lex := ext.Lexicon()
	body := dto.LexiconResponse{
		Categories: make([]dto.LexiconCategoryResponse, 0, len(lex.Categories())),
		Features:   ext.Schema().Names(),
		Schema:     ext.Schema().Fingerprint(),
	}
	for _, cat := range lex.Categories() {
		body.Categories = append(body.Categories, dto.LexiconCategoryResponse{
			Category: string(cat),
			Phrases:  lex.Phrases(cat),
		})
	}
	return &LexiconHandler{body: body}
}

func (h *LexiconHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/lexicon", h.Get)
}

func (h *LexiconHandler) Get(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.body)
}
