package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/cardiocheck/internal/api"
	"github.com/terraincognita07/cardiocheck/internal/cli"
	"github.com/terraincognita07/cardiocheck/internal/config"
	"github.com/terraincognita07/cardiocheck/internal/dataset"
	"github.com/terraincognita07/cardiocheck/internal/db"
	"github.com/terraincognita07/cardiocheck/internal/i18n"
	"github.com/terraincognita07/cardiocheck/internal/logging"
	"github.com/terraincognita07/cardiocheck/internal/mailer"
	"github.com/terraincognita07/cardiocheck/internal/metrics"
	"github.com/terraincognita07/cardiocheck/internal/ml"
	"github.com/terraincognita07/cardiocheck/internal/services"
)

const (
	shutdownTimeout      = 10 * time.Second
	authRequestsPerMin   = 30
	authRequestsInterval = time.Minute
)

const usage = `usage:
  cardiocheck                         start the web server
  cardiocheck reset-password <user>   replace a password with a temporary one
  cardiocheck set-password <user>     prompt for a new password`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdin *os.File, stdout io.Writer) error {
	if len(args) == 0 || args[0] == "serve" {
		return serve()
	}

	switch args[0] {
	case "reset-password", "set-password":
		if len(args) != 2 {
			return errors.New(usage)
		}
		storage, err := config.LoadStorage()
		if err != nil {
			return err
		}
		if args[0] == "reset-password" {
			return cli.RunResetPasswordCommand(storage.DBPath, args[1], stdout)
		}
		return cli.RunSetPasswordCommand(storage.DBPath, args[1], stdin, stdout)
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

// loadModel reads the dataset and trains the classifier once. Both steps log
// their own completion.
func loadModel(datasetPath string) (*dataset.Table, *ml.Model, float64, error) {
	loader := dataset.NewLoader(datasetPath)
	table, err := loader.Load()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("dataset load failed: %w", err)
	}
	model, accuracy, err := ml.NewCachedTrainer(loader, ml.DefaultParams()).Model()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("model training failed: %w", err)
	}
	return table, model, accuracy, nil
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		_ = db.Close(database)
	}()

	table, model, accuracy, err := loadModel(cfg.DatasetPath)
	if err != nil {
		return err
	}

	registry := metrics.New()
	registry.SetModelAccuracy(accuracy)

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage, i18n.Locales())
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	repositories := db.NewRepositories(database)
	if users, err := repositories.Users.CountUsers(); err == nil {
		slog.Info("database ready", "code", logging.SYSTEM, "path", cfg.DBPath, "users", users)
	}
	auth := services.NewAuthService(repositories.Users)
	handler, err := api.NewHandler(api.Dependencies{
		Auth:       auth,
		Login:      services.NewLoginService(auth, mailer.New(cfg.Mail)),
		Prediction: services.NewPredictionService(model, accuracy, registry),
		Feedback:   services.NewFeedbackService(repositories.Feedback),
		Table:      table,
		Analysis:   dataset.Analyze(table),
		Metrics:    registry,
		I18n:       i18nManager,
	}, cfg.SecretKey, cfg.TemplatesDir, cfg.CookieSecure)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler, registry, cfg.CookieSecure)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "code", logging.SYSTEM, "error", err)
		}
	}()

	slog.Info("cardiocheck listening", "code", logging.SYSTEM, "addr", cfg.ListenAddress(), "db", cfg.DBPath)
	if err := app.Listen(cfg.ListenAddress()); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler, registry *metrics.Metrics, cookieSecure bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "CardioCheck",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cookieSecure)))

	authLimiter := limiter.New(authLimiterConfig(handler.RateLimited))
	app.Use("/api/auth/login", authLimiter)
	app.Use("/api/auth/register", authLimiter)

	app.Get("/metrics", adaptor.HTTPHandler(registry.Handler()))
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "cardiocheck_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		Next:           skipCSRF,
	}
}

// skipCSRF exempts JSON API clients, which cannot carry the form token and
// are not exposed to cross-site form posts.
func skipCSRF(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON)
}

func authLimiterConfig(limitReached fiber.Handler) limiter.Config {
	return limiter.Config{
		Max:          authRequestsPerMin,
		Expiration:   authRequestsInterval,
		LimitReached: limitReached,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() != fiber.MethodPost
		},
	}
}
