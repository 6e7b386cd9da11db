package router

import (
	"net/http"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/config"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/handler"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/middleware"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/response"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Student   *handler.StudentHandler
	Request   *handler.RequestHandler
	Calendar  *handler.CalendarHandler
	Form      *handler.FormHandler
	AdminUser *handler.AdminUserHandler
	Content   *handler.ContentHandler
	Document  *handler.DocumentHandler
	Export    *handler.ExportHandler
	Dashboard *handler.DashboardHandler
	WS        *handler.WSHandler
	System    *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// limiter guards the unauthenticated auth and form-check routes; the caller
// owns its cleanup loop.
func SetupRouter(
	auth middleware.Authenticator,
	handlers *Handlers,
	limiter *middleware.RateLimiter,
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
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the access log can carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// Exports are already compressed archives or PDFs; the status stream is SSE.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: middleware.DefaultBrotliConfig.MinLength,
		Skipper:   middleware.SkipPathPrefixes("/api/v1/admin/export", "/api/v1/admin/system/stream"),
	}))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	authed := middleware.Authenticated(auth)

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	publicAPI.Use(middleware.CacheControl(60))
	{
		publicAPI.GET("/notices", handlers.Content.ListNotices)
		publicAPI.GET("/concerts", handlers.Content.ListUpcomingConcerts)
	}

	// Registration form lookup (public, rate limited).
	router.POST("/api/v1/forms/check", limiter.Middleware(), handlers.Form.CheckSubmission)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	authAPI := router.Group("/api/v1/auth")
	{
		authAPI.POST("/register", limiter.Middleware(), handlers.Auth.Register)
		authAPI.POST("/login", limiter.Middleware(), handlers.Auth.Login)

		// Authenticated profile routes
		authAPI.POST("/logout", append(authed, handlers.Auth.Logout)...)
		authAPI.GET("/me", append(authed, middleware.NoStore(), handlers.Auth.Me)...)
	}

	// ─── 2. Any Signed-In User ─────────────────────────────────────────
	meAPI := router.Group("/api/v1/me")
	meAPI.Use(authed...)
	{
		meAPI.POST("/verify-student", handlers.Student.VerifyStudent)
	}

	// ─── 3. Student Group (JWT + Session + Role) ───────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(authed...)
	studentAPI.Use(middleware.RequireStudent(), middleware.NoStore())
	{
		studentAPI.GET("/dashboard", handlers.Student.Dashboard)
		studentAPI.GET("/balance", handlers.Student.GetBalance)
		studentAPI.GET("/class-requests", handlers.Student.ListClassRequests)
		studentAPI.POST("/class-requests", handlers.Student.SubmitClassRequest)
		studentAPI.GET("/credit-requests", handlers.Student.ListCreditRequests)
		studentAPI.POST("/credit-requests", handlers.Student.SubmitCreditRequest)
	}

	// ─── 4. WebSocket Group (token in query string) ────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(authed...)
	ws.Use(middleware.RequireAdmin())
	{
		ws.GET("/admin/requests", handlers.WS.RequestFeed)
	}

	// ─── 5. Admin Group (JWT + Session + Role) ─────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(authed...)
	adminAPI.Use(middleware.RequireAdmin(), middleware.NoStore())
	{
		adminAPI.GET("/dashboard", handlers.Dashboard.GetDashboard)
		adminAPI.GET("/guest-list", handlers.Dashboard.ListGuestList)

		// Request lifecycle
		adminAPI.GET("/class-requests", handlers.Request.ListClassRequests)
		adminAPI.POST("/class-requests/:id/approve", handlers.Request.ApproveClassRequest)
		adminAPI.GET("/credit-requests", handlers.Request.ListCreditRequests)
		adminAPI.POST("/credit-requests/:id/approve", handlers.Request.ApproveCreditRequest)
		adminAPI.POST("/requests/:collection/:id/decline", handlers.Request.DeclineRequest)

		// Calendar
		adminAPI.POST("/calendar/events", handlers.Calendar.CreateEvent)

		// Users
		adminAPI.GET("/users", handlers.AdminUser.ListUsers)
		adminAPI.PUT("/users/:id/role", handlers.AdminUser.SetRole)
		adminAPI.DELETE("/users/:id", handlers.AdminUser.DeleteUser)

		// Notices
		adminAPI.POST("/notices", handlers.Content.CreateNotice)
		adminAPI.PUT("/notices/:id", handlers.Content.UpdateNotice)
		adminAPI.DELETE("/notices/:id", handlers.Content.DeleteNotice)

		// Concerts
		adminAPI.GET("/concerts", handlers.Content.ListAllConcerts)
		adminAPI.POST("/concerts", handlers.Content.CreateConcert)
		adminAPI.PUT("/concerts/:id", handlers.Content.UpdateConcert)
		adminAPI.DELETE("/concerts/:id", handlers.Content.DeleteConcert)

		// Raw document browser
		docs := adminAPI.Group("/documents")
		{
			docs.GET("", handlers.Document.ListCollections)
			docs.GET("/:collection", handlers.Document.ListDocuments)
			docs.POST("/:collection/bulk-delete", handlers.Document.BulkDeleteDocuments)
			docs.GET("/:collection/:id", handlers.Document.GetDocument)
			docs.PUT("/:collection/:id", handlers.Document.UpdateDocument)
			docs.DELETE("/:collection/:id", handlers.Document.DeleteDocument)
		}

		// Exports
		adminAPI.GET("/export/:collection", handlers.Export.Export)

		// System monitoring
		adminAPI.GET("/system/status", handlers.System.Status)
		adminAPI.GET("/system/stream", handlers.System.StatusStream)
	}

	return router
}
