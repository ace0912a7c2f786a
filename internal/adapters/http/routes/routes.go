package routes

import (
	"time"

	"libraryhub/internal/adapters/http/handlers"
	"libraryhub/internal/adapters/http/middleware"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"
	"libraryhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Catalog repositories
	authorRepo := repositories.NewAuthorRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	bookRepo := repositories.NewBookRepository(db)

	// Membership and lending repositories
	memberRepo := repositories.NewMemberRepository(db)
	borrowingRepo := repositories.NewBorrowingRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	catalogService := services.NewCatalogService(bookRepo, authorRepo, categoryRepo)
	membershipService := services.NewMembershipService(memberRepo)
	lendingService := services.NewLendingService(db, cfg.Lending.LoanPeriodDays)
	queryService := services.NewQueryService(db, bookRepo, borrowingRepo)
	statsService := services.NewStatsService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalogService, queryService)
	memberHandler := handlers.NewMemberHandler(membershipService, queryService)
	borrowingHandler := handlers.NewBorrowingHandler(lendingService, queryService)
	statsHandler := handlers.NewStatsHandler(statsService, queryService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, catalogHandler,
		memberHandler, borrowingHandler, statsHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	memberHandler *handlers.MemberHandler,
	borrowingHandler *handlers.BorrowingHandler,
	statsHandler *handlers.StatsHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Catalog routes (public reads, staff writes)
	setupCatalogRoutes(router, catalogHandler, cfg)

	// Member routes (public reads, staff writes)
	memberRoutes := router.Group("/members")
	setupMemberRoutes(memberRoutes, memberHandler, cfg)

	// Borrowing routes (public reads, staff writes)
	borrowingRoutes := router.Group("/borrowings")
	setupBorrowingRoutes(borrowingRoutes, borrowingHandler, cfg)

	// Stats and report routes (public)
	setupStatsRoutes(router, statsHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited against brute force
	router.Post("/register", middleware.StrictRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), middleware.PrivateCacheHeaders(30*time.Second), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupCatalogRoutes configures book, author and category routes
func setupCatalogRoutes(router fiber.Router, handler *handlers.CatalogHandler, cfg *config.Config) {
	// Books
	bookRoutes := router.Group("/books")
	bookRoutes.Get("/", handler.ListBooks)
	bookRoutes.Get("/:id", handler.GetBook)
	bookRoutes.Post("/", middleware.AuthMiddleware(cfg), middleware.StaffOnly(), handler.CreateBook)

	// Authors (reference data, cacheable)
	authorRoutes := router.Group("/authors")
	authorRoutes.Get("/", middleware.ReferenceDataCache(), handler.ListAuthors)
	authorRoutes.Get("/:id", middleware.ReferenceDataCache(), handler.GetAuthor)
	authorRoutes.Post("/", middleware.AuthMiddleware(cfg), middleware.StaffOnly(), handler.CreateAuthor)

	// Categories (reference data, cacheable)
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", middleware.ReferenceDataCache(), handler.ListCategories)
	categoryRoutes.Get("/:id", middleware.ReferenceDataCache(), handler.GetCategory)
	categoryRoutes.Post("/", middleware.AuthMiddleware(cfg), middleware.StaffOnly(), handler.CreateCategory)
}

// setupMemberRoutes configures member routes
func setupMemberRoutes(router fiber.Router, handler *handlers.MemberHandler, cfg *config.Config) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.GetByID)

	// Staff only
	router.Post("/", middleware.AuthMiddleware(cfg), middleware.StaffOnly(), handler.Create)
}

// setupBorrowingRoutes configures lending ledger routes
func setupBorrowingRoutes(router fiber.Router, handler *handlers.BorrowingHandler, cfg *config.Config) {
	// Reads carry no-cache headers, overdue status is derived from
	// the clock and must not be served stale
	router.Get("/", middleware.NoCacheHeaders(), handler.List)
	router.Get("/:id", middleware.NoCacheHeaders(), handler.GetByID)

	// Staff only
	router.Post("/", middleware.AuthMiddleware(cfg), middleware.StaffOnly(), handler.Checkout)
	router.Put("/:id/return", middleware.AuthMiddleware(cfg), middleware.StaffOnly(), handler.Return)
}

// setupStatsRoutes configures statistics and report routes
func setupStatsRoutes(router fiber.Router, handler *handlers.StatsHandler) {
	router.Get("/stats", middleware.CacheControl(30*time.Second), handler.GetStats)
	router.Get("/reports/overdue", middleware.NoCacheHeaders(), handler.OverdueReport)
}
