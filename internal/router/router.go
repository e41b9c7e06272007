package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vocastudio/voca-backend/internal/config"
	"github.com/vocastudio/voca-backend/internal/handler"
	"github.com/vocastudio/voca-backend/internal/middleware"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/response"
	"github.com/vocastudio/voca-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Academy      *handler.AcademyHandler
	User         *handler.UserHandler
	Wordbook     *handler.WordbookHandler
	Word         *handler.WordHandler
	Test         *handler.TestHandler
	Game         *handler.GameHandler
	Notification *handler.NotificationHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

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
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/staff/login", handlers.Auth.StaffLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.GetProfile)
		auth.GET("/staff/me", middleware.RequireStaffJWT(authService), handlers.Auth.GetProfile)
	}

	// ─── 2. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		studentAPI.GET("/wordbooks", handlers.Wordbook.ListWordbooks)
		studentAPI.GET("/wordbooks/:id", handlers.Wordbook.GetWordbook)

		studentAPI.POST("/tests", handlers.Test.GenerateTest)
		studentAPI.POST("/tests/submit", handlers.Test.SubmitTest)
		studentAPI.GET("/results", handlers.Test.MyResults)
		studentAPI.GET("/results/stats", handlers.Test.MyStats)

		studentAPI.POST("/games/scores", handlers.Game.SubmitScore)
		// Leaderboards tolerate brief staleness, let clients cache them.
		studentAPI.GET("/games/wordbooks/:id/leaderboard", middleware.CacheControl(30), handlers.Game.Leaderboard)

		studentAPI.GET("/announcements", handlers.Notification.RecentAnnouncements)
	}

	// ─── 3. WebSocket Group (Student WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireStudentWSAuth(authService))
	{
		ws.GET("/student/notifications", handlers.WS.NotificationStream)
	}

	// ─── 4. Staff Group (JWT, any staff role) ──────────────────────────
	staffAPI := router.Group("/api/v1/staff")
	staffAPI.Use(middleware.RequireStaffJWT(authService))
	{
		// Wordbook content management
		staffAPI.GET("/wordbooks", handlers.Wordbook.ListWordbooks)
		staffAPI.GET("/wordbooks/:id", handlers.Wordbook.GetWordbook)
		staffAPI.POST("/wordbooks", handlers.Wordbook.CreateWordbook)
		staffAPI.PUT("/wordbooks/:id", handlers.Wordbook.UpdateWordbook)
		staffAPI.DELETE("/wordbooks/:id", handlers.Wordbook.DeleteWordbook)
		staffAPI.POST("/wordbooks/:id/import", handlers.Wordbook.ImportWords)

		staffAPI.POST("/wordbooks/:id/words", handlers.Word.AddWord)
		staffAPI.PUT("/wordbooks/:id/words/:word_id", handlers.Word.UpdateWord)
		staffAPI.DELETE("/wordbooks/:id/words/:word_id", handlers.Word.DeleteWord)

		staffAPI.GET("/wordbooks/:id/results", handlers.Test.WordbookResults)

		// Announcements
		staffAPI.POST("/announcements", handlers.Notification.PostAnnouncement)
		staffAPI.GET("/announcements", handlers.Notification.RecentAnnouncements)

		// Account management, academy admins only
		usersGroup := staffAPI.Group("/users")
		usersGroup.Use(middleware.RequireRole(model.RoleAcademyAdmin, model.RoleSuperAdmin))
		{
			usersGroup.GET("", handlers.User.ListUsers)
			usersGroup.POST("", handlers.User.CreateUser)
			usersGroup.PUT("/:id", handlers.User.UpdateUser)
			usersGroup.DELETE("/:id", handlers.User.DeleteUser)
			usersGroup.POST("/:id/reset-session", handlers.User.ResetStudentSession)
		}
	}

	// ─── 5. Admin Group (Super Admin Only) ─────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireStaffJWT(authService),
		middleware.RequireRole(model.RoleSuperAdmin),
	)
	{
		adminAPI.GET("/academies", handlers.Academy.ListAcademies)
		adminAPI.GET("/academies/billing", handlers.Academy.BillingSummary)
		adminAPI.GET("/academies/:id", handlers.Academy.GetAcademy)
		adminAPI.POST("/academies", handlers.Academy.CreateAcademy)
		adminAPI.PUT("/academies/:id", handlers.Academy.UpdateAcademy)
		adminAPI.DELETE("/academies/:id", handlers.Academy.DeleteAcademy)
	}

	return router
}
