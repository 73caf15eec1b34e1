package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/identity-api/internal/application/authz"
	"github.com/jhoicas/identity-api/internal/application/usecase"
	"github.com/jhoicas/identity-api/internal/infrastructure/postgres"
	"github.com/jhoicas/identity-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/identity-api/internal/infrastructure/security"
	"github.com/jhoicas/identity-api/internal/infrastructure/uuidgen"
	httpRouter "github.com/jhoicas/identity-api/internal/interfaces/http"
	"github.com/jhoicas/identity-api/pkg/config"
	"github.com/jhoicas/identity-api/pkg/jwt"
	"github.com/jhoicas/identity-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	codec, err := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.ExpMinutes)*time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración del códec JWT")
	}

	factory := postgres.NewUoWFactory(pool)
	hasher := security.NewBcryptHasher()
	ids := uuidgen.New()
	policy := authz.NewPolicy()
	sessionLifetime := time.Duration(cfg.Session.LifetimeHours) * time.Hour

	// Limitador de intentos de login: solo si hay Redis configurado.
	var throttle httpRouter.LoginThrottle
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no responde; el limitador arranca igual (fail-open)")
		}
		defer rdb.Close()
		throttle = ratelimit.NewLoginLimiter(
			rdb,
			cfg.Redis.LoginMaxAttempts,
			time.Duration(cfg.Redis.LoginWindowMinutes)*time.Minute,
			log,
		)
	}

	if cfg.Bootstrap.Enabled {
		err := usecase.BootstrapAdmin(ctx, factory, hasher, ids,
			cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword, log)
		if err != nil {
			log.Fatal().Err(err).Msg("bootstrap del admin inicial")
		}
	}

	loginUC := usecase.NewAuthenticateUser(factory, hasher, codec, ids, sessionLifetime, log)
	logoutUC := usecase.NewLogoutUser(factory, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	secureCookies := cfg.App.Env == "production"
	httpRouter.Router(app, httpRouter.RouterDeps{
		Guard:     httpRouter.NewSessionGuard(codec, factory, cfg.Session.CookieName, log),
		Auth:      httpRouter.NewAuthHandler(loginUC, logoutUC, throttle, cfg.Session.CookieName, secureCookies),
		Users:     httpRouter.NewUserHandler(policy, factory, hasher, ids, log),
		Resources: httpRouter.NewResourceHandler(policy, log),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
