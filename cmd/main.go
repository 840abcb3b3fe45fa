package main

import (
	"context"
	"food-inventory/config"
	_ "food-inventory/docs"
	"food-inventory/internal/handler"
	"food-inventory/internal/migrations"
	"food-inventory/internal/notifier"
	"food-inventory/internal/observability"
	"food-inventory/internal/repository"
	"food-inventory/internal/security"
	"food-inventory/internal/service"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Food-inventory
// @version 1.0
// @description REST API учета продуктов: аутентификация, пользователи, категории, продукты и остатки

// @host localhost:8080

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := "config.yaml"
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		configPath = path
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Некорректная конфигурация: %v", err)
	}

	jwtService, err := security.NewJWTService(&cfg.JWT)
	if err != nil {
		log.Fatalf("Ошибка настройки JWT: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	if cfg.DatabaseConfig.MigrateOnStart {
		if err := migrations.Run(ctx, db.DB.DB); err != nil {
			log.Fatalf("Ошибка применения миграций: %v", err)
		}
	}

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName)
	if err != nil {
		log.Fatalf("Ошибка настройки трассировки: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("Ошибка при остановке трассировки: %v", err)
		}
	}()

	// длительности уже проверены в cfg.Validate
	cacheTTL, _ := config.ParsePositiveDuration(cfg.Cache.TTL)
	resetTTL, _ := config.ParsePositiveDuration(cfg.PasswordReset.TTL)
	sendTimeout, _ := config.ParsePositiveDuration(cfg.Mail.SendTimeout)

	mailer, err := notifier.New(&cfg.Mail)
	if err != nil {
		log.Fatalf("Ошибка настройки отправки писем: %v", err)
	}
	if closer, ok := mailer.(interface{ Close() error }); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Printf("Ошибка при закрытии notifier: %v", err)
			}
		}()
	}

	userRepo := repository.NewUserRepository()
	claimRepo := repository.NewClaimRepository()
	roleRepo := repository.NewRoleRepository()
	categoryRepo := repository.NewCategoryRepository()
	productRepo := repository.NewProductRepository()
	stockRepo := repository.NewStockRepository()
	historicalRepo := repository.NewHistoricalRepository()
	cacheRepo := repository.NewCacheRepository(redisClient, cacheTTL)
	resetTokenRepo := repository.NewResetTokenRepository(redisClient)

	authService := service.NewAuthenticationService(db, userRepo, claimRepo, roleRepo, jwtService)
	refreshService := service.NewRefreshService(db, userRepo, claimRepo, roleRepo, jwtService)
	claimSynchronizer := service.NewClaimSynchronizer(claimRepo, roleRepo)
	userService := service.NewUserService(db, userRepo, claimRepo, roleRepo, claimSynchronizer)
	passwordService := service.NewPasswordService(db, userRepo, resetTokenRepo, mailer, service.PasswordResetOptions{
		ResetURL:    cfg.Mail.ResetURL,
		TokenTTL:    resetTTL,
		SendTimeout: sendTimeout,
	})
	inventoryService := service.NewInventoryService(db, categoryRepo, productRepo, stockRepo, historicalRepo, cacheRepo)

	if err := authService.EnsureAdmin(ctx, &cfg.Admin); err != nil {
		log.Fatalf("Ошибка создания администратора: %v", err)
	}

	srv, router := config.SetupServer(cfg.ServerAddr)

	registry := prometheus.NewRegistry()
	metricsHandler := observability.RegisterMetrics(registry)

	router.Use(middleware.Recoverer)
	router.Use(observability.MetricsMiddleware)
	router.NotFound(handler.NotFound)
	router.Handle("/metrics", metricsHandler)
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	handler.SetupRoutes(router, handler.Handlers{
		Authentication: handler.NewAuthenticationHandler(authService, refreshService, passwordService),
		User:           handler.NewUserHandler(userService, passwordService),
		Inventory:      handler.NewInventoryHandler(inventoryService),
	}, jwtService)

	runServer(ctx, srv)
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
