package routes

import "github.com/gofiber/fiber/v3"

func RegisterV1(r fiber.Router, reg *Registry) {
	if r == nil || reg == nil {
		return
	}

	if reg.Lexicon != nil {
		reg.Lexicon.RegisterRoutes(r)
	}
	if reg.Analysis != nil {
		var guard fiber.Handler
		if reg.Auth != nil {
			guard = reg.Auth.Middleware()
		}
		reg.Analysis.RegisterRoutes(r, guard)
	}
}
