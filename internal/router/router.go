package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/config"
	"github.com/stemsi/gatemock-backend/internal/handler"
	"github.com/stemsi/gatemock-backend/internal/middleware"
	"github.com/stemsi/gatemock-backend/internal/response"
)

// catalogueMaxAge is how long clients may cache the branch and test lists.
const catalogueMaxAge = time.Hour

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Exam        *handler.ExamHandler
	Question    *handler.QuestionHandler
	Dashboard   *handler.DashboardHandler
	CurrentUser *handler.CurrentUserHandler
	System      *handler.SystemHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background work owned by the router, such as rate limiter
// cleanup.
func SetupRouter(
	ctx context.Context,
	users middleware.CurrentUserProvider,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log.With().Str("component", "http").Logger()))

	// Apply brotli middleware globally. Large payloads are the question
	// bank, the result history and exam reviews.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", handlers.System.Health)

	loadUser := middleware.LoadCurrentUser(users, log.With().Str("component", "current_user").Logger())

	// ─── 1. Session Group (current user, may be signed out) ────────────
	sessionAPI := router.Group("/api/v1")
	sessionAPI.Use(loadUser)
	{
		sessionAPI.GET("/current-user", handlers.CurrentUser.GetCurrentUser)
		sessionAPI.PUT("/current-user", handlers.CurrentUser.SetCurrentUser)
		sessionAPI.DELETE("/current-user", handlers.CurrentUser.SignOut)
	}

	// ─── 2. Exam Group (signed in) ─────────────────────────────────────
	examAPI := router.Group("/api/v1/exam")
	examAPI.Use(loadUser, middleware.RequireCurrentUser())
	{
		catalogue := middleware.CacheControl(catalogueMaxAge)
		examAPI.GET("/branches", catalogue, handlers.Exam.ListBranches)
		examAPI.GET("/tests", catalogue, handlers.Exam.ListTests)
		examAPI.GET("/topics", handlers.Exam.ListTopics)

		examAPI.GET("/state", handlers.Exam.GetState)
		examAPI.POST("/branch", handlers.Exam.PickBranch)
		examAPI.POST("/topic", handlers.Exam.PickTopic)
		examAPI.POST("/test", handlers.Exam.PickTest)
		examAPI.POST("/start", handlers.Exam.Start)
		examAPI.POST("/answer", handlers.Exam.SelectAnswer)
		examAPI.POST("/navigate", handlers.Exam.Navigate)
		examAPI.POST("/mark", handlers.Exam.MarkForReview)
		examAPI.POST("/submit", handlers.Exam.Submit)
		examAPI.GET("/result", handlers.Exam.GetResult)
		examAPI.GET("/review", handlers.Exam.GetReview)
		examAPI.POST("/retake", handlers.Exam.Retake)
		examAPI.POST("/back", handlers.Exam.Back)
		examAPI.POST("/admin", handlers.Exam.OpenAdmin)
	}

	// ─── 3. Student Data Group (signed in) ─────────────────────────────
	dataAPI := router.Group("/api/v1")
	dataAPI.Use(loadUser, middleware.RequireCurrentUser())
	{
		dataAPI.GET("/dashboard", handlers.Dashboard.GetDashboardData)
		dataAPI.GET("/results", handlers.Dashboard.ListResults)
	}

	// ─── 4. Question Bank Group (admin, writes rate limited) ───────────
	adminLimiter := middleware.NewRateLimiter(ctx, cfg.AdminRateLimitPerMinute, time.Minute)

	questionAPI := router.Group("/api/v1/questions")
	questionAPI.Use(loadUser, middleware.RequireAdmin())
	{
		questionAPI.GET("", handlers.Question.ListQuestions)
		questionAPI.POST("", adminLimiter.Middleware(), handlers.Question.AddQuestion)
	}

	// ─── 5. WebSocket Group (signed in) ────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(loadUser, middleware.RequireCurrentUser())
	{
		ws.GET("/exam/stream", handlers.WS.ExamStream)
	}

	return router
}
