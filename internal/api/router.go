package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anwar-ulhaq/Library-Backend/internal/api/handler"
	"github.com/anwar-ulhaq/Library-Backend/internal/api/middleware"
	"github.com/anwar-ulhaq/Library-Backend/internal/core/service"
	"github.com/anwar-ulhaq/Library-Backend/internal/infrastructure/config"
	mongodb "github.com/anwar-ulhaq/Library-Backend/internal/infrastructure/db/mongo"
	redisdb "github.com/anwar-ulhaq/Library-Backend/internal/infrastructure/db/redis"
	"github.com/anwar-ulhaq/Library-Backend/internal/infrastructure/google"
	"github.com/anwar-ulhaq/Library-Backend/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("library"))

	// --- Dependencies ---
	authorRepo := mongodb.NewAuthorRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	revocations := redisdb.NewRevocationList(rdb)
	verifier := google.NewVerifier(google.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
	})

	authorService := service.NewAuthorService(authorRepo, bookRepo, log)
	bookService := service.NewBookService(bookRepo, authorService, log)
	authService := service.NewAuthService(
		userRepo, verifier, revocations,
		cfg.JWTSecret, 24*time.Hour, cfg.Google.AdminDomain, log,
	)

	authHandler := handler.NewAuthHandler(authService)
	authorHandler := handler.NewAuthorHandler(authorService)
	bookHandler := handler.NewBookHandler(bookService)

	authRequired := middleware.Auth(cfg.JWTSecret, revocations)
	adminOnly := middleware.AdminOnly()
	userOrAdmin := middleware.UserOrAdmin()

	// --- API routes ---
	v1 := e.Group(cfg.BasePath)

	v1.POST("/signup", authHandler.Signup)
	v1.POST("/login", authHandler.Login)
	v1.GET("/google", authHandler.GoogleAuth)
	v1.GET("/auth/google/callback", authHandler.GoogleCallback)
	v1.POST("/logout", authHandler.Logout, authRequired)

	v1.POST("/author", authorHandler.Create, authRequired, adminOnly)
	v1.PUT("/author", authorHandler.Update, authRequired, adminOnly)
	v1.DELETE("/author", authorHandler.Delete, authRequired, adminOnly)

	v1.GET("/books", bookHandler.FindAll)
	v1.GET("/book", bookHandler.FindByISBN)
	v1.POST("/book", bookHandler.Create, authRequired, adminOnly)
	v1.PUT("/book", bookHandler.Update, authRequired, adminOnly)
	v1.DELETE("/book", bookHandler.Delete, authRequired, adminOnly)
	v1.POST("/book/checkout", bookHandler.Checkout, authRequired, userOrAdmin)
	v1.POST("/book/return", bookHandler.Return, authRequired, userOrAdmin)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
