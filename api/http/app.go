package http

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/artem13815/fintrack/api/http/presenter"
	"github.com/artem13815/fintrack/pkg/logging"
)

type AppConfig struct {
	Log logging.Logger
	// ExposeErrors puts internal error text into 500 bodies. Off in production.
	ExposeErrors bool
	// AccessLog receives one line per request; nil disables access logging.
	AccessLog io.Writer
}

// NewApp builds the Fiber app with the shared middleware stack.
func NewApp(cfg AppConfig) *fiber.App {
	if cfg.Log == nil {
		cfg.Log = logging.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:               "fintrack",
		DisableStartupMessage: true,
		ErrorHandler:          presenter.ErrorHandler(cfg.Log, cfg.ExposeErrors),
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if cfg.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Output: cfg.AccessLog,
			Format: "${time} ${locals:requestid} ${status} ${latency} ${method} ${path}\n",
		}))
	}
	return app
}
