package routes

import (
	"resume-analyzer/internal/delivery/http/handler"
	"resume-analyzer/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type WebSocketHandler interface {
	HandleAnalysesWS(c fiber.Ctx) error
}

type Registry struct {
	Health   *handler.HealthHandler
	Form     *handler.FormHandler
	Analysis *handler.AnalysisHandler
	Lexicon  *handler.LexiconHandler
	Auth     *middleware.AuthMiddleware
	WS       WebSocketHandler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.Form != nil {
		r.Form.RegisterRoutes(app)
	}
	if r.WS != nil {
		app.Get("/ws/analyses", r.WS.HandleAnalysesWS)
	}

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r)
}
