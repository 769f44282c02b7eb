package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mkraev/resumeforge/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	account *handlers.AccountHandler,
	resumes *handlers.ResumeHandler,
	analyses *handlers.AnalysisHandler,
	applications *handlers.ApplicationHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Post("/logout", auth.Logout)

	acc := v1.Group("/account", authMW)
	acc.Get("/me", account.Me)
	acc.Put("/password", account.ChangePassword)

	rg := v1.Group("/resumes", authMW)
	rg.Post("/", resumes.Create)
	rg.Get("/", resumes.List)
	rg.Post("/import", resumes.Import)
	rg.Get("/:id", resumes.Get)
	rg.Put("/:id", resumes.Update)
	rg.Delete("/:id", resumes.Delete)

	an := v1.Group("/analyses", authMW)
	an.Post("/", analyses.Analyze)
	an.Get("/", analyses.List)
	an.Get("/:id", analyses.Get)
	an.Delete("/:id", analyses.Delete)

	ap := v1.Group("/applications", authMW)
	ap.Post("/", applications.Create)
	ap.Get("/", applications.List)
	ap.Get("/:id", applications.Get)
	ap.Put("/:id", applications.Update)
	ap.Delete("/:id", applications.Delete)
}
