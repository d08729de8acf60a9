package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/fintrack/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
// authMW guards every route that acts on the signed-in user.
func Register(
	app *fiber.App,
	users *handlers.AuthHandler,
	password *handlers.PasswordHandler,
	health *handlers.HealthHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	u := v1.Group("/users")
	u.Post("/register", users.Register)
	u.Post("/login", users.Login)
	u.Get("/me", authMW, users.Me)

	pw := u.Group("/password")
	// Update: signed-in user, code mailed to the account address
	pw.Post("/request-update", authMW, password.RequestUpdate)
	pw.Post("/verify-code-update", authMW, password.VerifyUpdate)
	pw.Put("/update", authMW, password.Update)
	// Reset: anonymous, keyed by e-mail
	pw.Post("/request-reset", password.RequestReset)
	pw.Post("/verify-code-reset", password.VerifyReset)
	pw.Post("/reset", password.Reset)
}
