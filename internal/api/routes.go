package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"rgResume/internal/api/middleware"
	"rgResume/internal/session"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	store *session.Store,
	asynqClient taskEnqueuer,
	redisClient *redis.Client,
	logger *slog.Logger,
	internalSecret string,
	allowedOrigins []string,
) {
	sessionHandler := NewSessionHandler(store, logger)
	markupHandler := NewMarkupHandler()
	renderHandler := NewRenderHandler(store, logger)

	var rateCounter redisRateCounter
	if redisClient != nil {
		rateCounter = redisClient
	}
	exportHandler := NewExportHandler(store, asynqClient, rateCounter, logger)
	wsHandler := NewWsHandler(redisClient, store, logger, allowedOrigins)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		markupGroup := v1.Group("/markup")
		{
			markupGroup.POST("/format", markupHandler.ApplyFormat)
			markupGroup.POST("/link", markupHandler.InsertLink)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.PUT("/:id", sessionHandler.ReplaceSession)
			sessions.POST("/:id/sample", sessionHandler.LoadSample)

			sessions.PUT("/:id/personal", sessionHandler.UpdatePersonal)
			sessions.PUT("/:id/summary", sessionHandler.UpdateSummary)

			sessions.POST("/:id/entries/:collection", sessionHandler.AddEntry)
			sessions.PATCH("/:id/entries/:collection/:entryID", sessionHandler.UpdateEntryField)
			sessions.DELETE("/:id/entries/:collection/:entryID", sessionHandler.RemoveEntry)

			sessions.PUT("/:id/skills/:category", sessionHandler.UpdateSkills)

			sessions.DELETE("/:id/sections/:key", sessionHandler.ClearSection)
			sessions.POST("/:id/sections/:key/move-up", sessionHandler.MoveSectionUp)
			sessions.POST("/:id/sections/:key/move-down", sessionHandler.MoveSectionDown)

			sessions.GET("/:id/preview", renderHandler.Preview)
			sessions.GET("/:id/editor", renderHandler.Editor)

			sessions.POST("/:id/export/image", exportHandler.ExportImage)
			sessions.POST("/:id/export/pdf", exportHandler.ExportPDF)

			internalGroup := sessions.Group("")
			internalGroup.Use(middleware.InternalSecretMiddleware(internalSecret))
			{
				internalGroup.GET("/:id/print", renderHandler.PrintData)
			}
		}
	}
}
