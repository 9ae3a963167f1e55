package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/opencamp-hq/bootcamp-api/internal/aggregate"
	"github.com/opencamp-hq/bootcamp-api/internal/api/handler"
	"github.com/opencamp-hq/bootcamp-api/internal/api/middleware"
	"github.com/opencamp-hq/bootcamp-api/internal/core/domain"
	"github.com/opencamp-hq/bootcamp-api/internal/core/service"
	mongodb "github.com/opencamp-hq/bootcamp-api/internal/infrastructure/db/mongo"
	redisdb "github.com/opencamp-hq/bootcamp-api/internal/infrastructure/db/redis"
	"github.com/opencamp-hq/bootcamp-api/internal/pkg/config"
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
	e.Use(echoprometheus.NewMiddleware("bootcamp_api"))

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	bootcamps := mongodb.NewBootcampRepository(db)
	courses := mongodb.NewCourseRepository(db)
	reviews := mongodb.NewReviewRepository(db)

	// --- Aggregate maintenance ---
	maintainer := aggregate.NewMaintainer(mongodb.NewAggregateStore(db), log)

	// --- Services ---
	authService := service.NewAuthService(users, cfg.JWTSecret, cfg.JWTExpire)
	bootcampService := service.NewBootcampService(bootcamps, courses, reviews)
	courseService := service.NewCourseService(courses, bootcamps, maintainer)
	reviewService := service.NewReviewService(reviews, bootcamps, maintainer)
	userService := service.NewUserService(users)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.CookieExpire)
	bootcampHandler := handler.NewBootcampHandler(bootcampService)
	courseHandler := handler.NewCourseHandler(courseService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	userHandler := handler.NewUserHandler(userService)

	// --- Access control, composed at registration time ---
	protect := middleware.Protect(authService, users)
	publisherOnly := middleware.Authorize(domain.RolePublisher, domain.RoleAdmin)
	reviewerOnly := middleware.Authorize(domain.RoleUser, domain.RoleAdmin)
	adminOnly := middleware.Authorize(domain.RoleAdmin)

	// --- Ops endpoints (no auth, no rate limit) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)

	// --- API v1 ---
	limiter := redisdb.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)
	v1 := e.Group("/api/v1", middleware.RateLimit(limiter, log))

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, protect)
	auth.PUT("/updatedetails", authHandler.UpdateDetails, protect)
	auth.PUT("/updatepassword", authHandler.UpdatePassword, protect)

	b := v1.Group("/bootcamps")
	b.GET("", bootcampHandler.List)
	b.GET("/:id", bootcampHandler.Get)
	b.POST("", bootcampHandler.Create, protect, publisherOnly)
	b.PUT("/:id", bootcampHandler.Update, protect, publisherOnly)
	b.DELETE("/:id", bootcampHandler.Delete, protect, publisherOnly)

	// Nested child routes.
	b.GET("/:bootcampId/courses", courseHandler.List)
	b.POST("/:bootcampId/courses", courseHandler.Create, protect, publisherOnly)
	b.GET("/:bootcampId/reviews", reviewHandler.List)
	b.POST("/:bootcampId/reviews", reviewHandler.Create, protect, reviewerOnly)

	co := v1.Group("/courses")
	co.GET("", courseHandler.List)
	co.GET("/:id", courseHandler.Get)
	co.PUT("/:id", courseHandler.Update, protect, publisherOnly)
	co.DELETE("/:id", courseHandler.Delete, protect, publisherOnly)

	rv := v1.Group("/reviews")
	rv.GET("", reviewHandler.List)
	rv.GET("/:id", reviewHandler.Get)
	rv.PUT("/:id", reviewHandler.Update, protect, reviewerOnly)
	rv.DELETE("/:id", reviewHandler.Delete, protect, reviewerOnly)

	u := v1.Group("/users", protect, adminOnly)
	u.GET("", userHandler.List)
	u.GET("/:id", userHandler.Get)
	u.POST("", userHandler.Create)
	u.PUT("/:id", userHandler.Update)
	u.DELETE("/:id", userHandler.Delete)

	return e
}
