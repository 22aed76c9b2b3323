package app

import (
	"memoria_backend/docs"
	"memoria_backend/internal/config"
	"memoria_backend/internal/middleware"
	"memoria_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 人格管理
		authGroup.POST("/personas", c.persona.Create)
		authGroup.GET("/personas", c.persona.List)
		authGroup.GET("/personas/:id", c.persona.Get)
		authGroup.PUT("/personas/:id", c.persona.Update)
		authGroup.DELETE("/personas/:id", c.persona.Delete)

		// 结构化访谈
		authGroup.GET("/onboarding/questionnaire", c.onboarding.GetQuestionnaire)
		authGroup.POST("/personas/:id/answers", c.onboarding.SubmitAnswer)
		authGroup.GET("/personas/:id/answers", c.onboarding.ListAnswers)
		authGroup.POST("/personas/:id/answers/voice", c.onboarding.SubmitVoiceAnswer)
		authGroup.POST("/personas/:id/answers/media", c.onboarding.AttachMedia)
		authGroup.DELETE("/personas/:id/answers/media/:mediaId", c.onboarding.RemoveMedia)
		authGroup.GET("/personas/:id/progress", c.onboarding.GetProgress)
		authGroup.GET("/personas/:id/prompt", c.chat.PreviewPrompt)

		// 对话
		authGroup.POST("/chat/sessions", c.chat.StartSession)
		authGroup.GET("/chat/sessions", c.chat.ListSessions)
		authGroup.POST("/chat/sessions/:id/end", c.chat.EndSession)
		authGroup.GET("/chat/sessions/:id/messages", c.chat.GetHistory)
		authGroup.POST("/chat/sessions/:id/messages", c.chat.SendMessage)
		authGroup.POST("/chat/sessions/:id/messages/stream", c.chat.SendMessageStream)

		// 日记
		authGroup.POST("/journal", c.journal.Create)
		authGroup.GET("/journal", c.journal.List)
		authGroup.PUT("/journal/:id", c.journal.Update)
		authGroup.DELETE("/journal/:id", c.journal.Delete)
	}
}
