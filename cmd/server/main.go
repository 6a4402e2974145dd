package main

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	_ "github.com/joebanks10/todo-api/docs" // swagger docs

	"github.com/joebanks10/todo-api/internal/auth"
	"github.com/joebanks10/todo-api/internal/cache"
	"github.com/joebanks10/todo-api/internal/config"
	"github.com/joebanks10/todo-api/internal/db"
	"github.com/joebanks10/todo-api/internal/handler"
	"github.com/joebanks10/todo-api/internal/model"
	"github.com/joebanks10/todo-api/internal/repository"
	"github.com/joebanks10/todo-api/internal/router"
	"github.com/joebanks10/todo-api/internal/service"
)

// @title Todo API
// @version 1.0
// @description Personal todo list backend with revocable token authentication.
// @host localhost:3000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey XAuth
// @in header
// @name x-auth
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logger.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Todo{},
			&model.Token{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logger.Warnf("failed to drop table (may not exist): %v", err)
			}
		}
		logger.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Token{},
		&model.Todo{},
	); err != nil {
		logger.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	tokenRepo := repository.NewTokenRepository(gormDB)
	todoRepo := repository.NewTodoRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenCache := auth.NewTokenCache(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenRepo, jwtService, tokenCache)
	todoService := service.NewTodoService(todoRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)

	// Register routes
	router.Register(e, authService, userHandler, todoHandler)

	if cfg.SwaggerHost != "" {
		logger.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		logger.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server start: %v", err)
	}
}
