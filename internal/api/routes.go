package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	registerAPIRoutes(app.Group("/api"), handler)
}

func registerAPIRoutes(api fiber.Router, handler *Handler) {
	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	journal := api.Group("/journal", handler.AuthRequired)
	journal.Get("", handler.ListEntries)
	journal.Post("", handler.CreateEntry)
	journal.Put("/selection", handler.SelectEntry)
	journal.Get("/:id", handler.GetEntry)
	journal.Patch("/:id", handler.UpdateEntry)
	journal.Delete("/:id", handler.DeleteEntry)

	meals := api.Group("/meals", handler.AuthRequired)
	meals.Get("", handler.ListMeals)
	meals.Post("", handler.CreateMeal)
	meals.Put("/selection", handler.SelectMeal)
	meals.Get("/:id", handler.GetMeal)
	meals.Patch("/:id", handler.UpdateMeal)
	meals.Delete("/:id", handler.DeleteMeal)

	plans := api.Group("/plans", handler.AuthRequired)
	plans.Get("", handler.ListPlans)
	plans.Get("/current", handler.CurrentPlan)
	plans.Post("", handler.CreatePlan)
	plans.Get("/:id", handler.GetPlan)
	plans.Patch("/:id", handler.UpdatePlan)
	plans.Delete("/:id", handler.DeletePlan)

	api.Post("/chat", handler.AuthRequired, handler.Chat)
	api.Get("/events", handler.AuthRequired, handler.Events)
}
