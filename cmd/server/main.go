// @title         fintrack API
// @version       1.0
// @description   Учёт личных финансов: регистрация, вход и управление паролем.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации в формате "Bearer <JWT>".
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	_ "github.com/artem13815/fintrack/docs"

	// internal imports
	apihttp "github.com/artem13815/fintrack/api/http"
	"github.com/artem13815/fintrack/api/http/handlers"
	"github.com/artem13815/fintrack/pkg/auth"
	"github.com/artem13815/fintrack/pkg/config"
	"github.com/artem13815/fintrack/pkg/health"
	"github.com/artem13815/fintrack/pkg/logging"
	"github.com/artem13815/fintrack/pkg/security/jwt"
	"github.com/artem13815/fintrack/pkg/security/otp"
	"github.com/artem13815/fintrack/pkg/security/password"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat).With("service", "fintrack", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Wire dependencies (Clean Architecture)
	deps, err := openBackends(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close()

	opts := []auth.Option{
		auth.WithCodeTTL(cfg.CodeTTL),
		auth.WithStoreTimeout(cfg.StoreTimeout),
		auth.WithMailTimeout(cfg.MailTimeout),
		auth.WithLogger(logger.With("component", "auth")),
	}
	hasher := password.NewHasher(password.DefaultCost)
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	authUC := auth.NewAuthService(deps.users, hasher, jwtGen, opts...)
	passwordUC := auth.NewPasswordService(deps.users, deps.codes, hasher, otp.NewGenerator(), deps.mailer, opts...)

	// JWT auth middleware for protected routes
	authMW := jwt.NewAuthMiddleware(jwt.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer))

	app := apihttp.NewApp(apihttp.AppConfig{
		Log:          logger.With("component", "http"),
		ExposeErrors: !cfg.Production(),
		AccessLog:    os.Stdout,
	})
	apihttp.Register(app,
		handlers.NewAuthHandler(authUC),
		handlers.NewPasswordHandler(passwordUC),
		handlers.NewHealthHandler(health.NewService(deps.checkers...)),
		authMW,
	)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	return serve(ctx, app, cfg.Port, logger)
}

// serve blocks until the listener fails or ctx is cancelled, then drains
// in-flight requests.
func serve(ctx context.Context, app *fiber.App, port string, logger logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", port)
		errCh <- app.Listen(":" + port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
