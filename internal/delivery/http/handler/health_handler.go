package handler

import (
	"context"
	"time"

	"resume-analyzer/internal/delivery/http/dto"
	"resume-analyzer/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type trainedModel interface {
	Trained() bool
}

type HealthHandler struct {
	model trainedModel
	deps  map[string]Pinger
}

// NewHealthHandler reports model readiness plus the reachability of each
// named optional dependency. Health stays 200 while the model is trained;
// dependency failures only show up in the body.
func NewHealthHandler(model trainedModel, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{model: model, deps: deps}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.deps))
	for name, p := range h.deps {
		if p == nil {
			deps[name] = "disabled"
			continue
		}
		if err := p.Ping(ctx); err != nil {
			deps[name] = "unavailable"
			continue
		}
		deps[name] = "ok"
	}

	body := dto.HealthResponse{
		ModelTrained: h.model != nil && h.model.Trained(),
		Dependencies: deps,
		ServerTime:   time.Now().UTC().Format(time.RFC3339),
	}
	if !body.ModelTrained {
		return response.Error(c, fiber.StatusServiceUnavailable, "model not trained", body)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, body)
}
