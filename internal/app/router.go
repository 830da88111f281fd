package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"skill_roadmap_backend/docs"
	"skill_roadmap_backend/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	router.GET("/", c.health.Root)
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api")
	{
		// 持久化四表
		api.POST("/users", c.user.CreateUser)
		api.GET("/users/:id", c.user.GetUser)
		api.POST("/chat-messages", c.message.CreateChatMessage)
		api.GET("/chat-messages/:userId", c.message.GetChatMessages)
		api.POST("/roadmaps", c.roadmap.CreateRoadmap)
		api.GET("/roadmaps/:userId", c.roadmap.GetRoadmaps)
		api.POST("/portfolios", c.portfolio.CreatePortfolio)
		api.GET("/portfolios/:userId", c.portfolio.GetPortfolios)
		api.POST("/portfolios/generate", c.portfolio.GeneratePortfolio)

		// 资源索引
		resources := api.Group("/resources")
		{
			resources.GET("", c.resource.ListResources)
			resources.GET("/types", c.resource.ListResourceTypes)
			resources.GET("/roadmaps", c.resource.ListResourcesByRoadmap)
		}

		// AI顾问
		advisor := api.Group("/advisor")
		{
			advisor.POST("/recommendations", c.advisor.Recommendations)
			advisor.POST("/chat", c.advisor.Chat)
			advisor.POST("/chat/stream", c.advisor.ChatStream)
		}
	}
}
