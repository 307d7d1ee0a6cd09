package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"contentpilot/internal/ai"
	appsvc "contentpilot/internal/app"
	"contentpilot/internal/bootstrap"
	"contentpilot/internal/cache"
	"contentpilot/internal/pkg/pdfextract"
	rabbitmqClient "contentpilot/internal/platform/rabbitmq"
	"contentpilot/internal/repository"
	"contentpilot/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	cfg := app.Config
	llmClient := ai.NewOpenAICompatibleClient()
	chatCfg := ai.ChatConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	}
	routerCfg := ai.ChatConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.RouterModel,
	}
	embCfg := ai.EmbeddingConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.EmbeddingModel,
	}
	searchClient := ai.NewTavilyClient(ai.TavilyConfig{
		BaseURL:    cfg.Search.BaseURL,
		APIKey:     cfg.Search.APIKey,
		MaxResults: cfg.Search.MaxResults,
	})

	retriever := appsvc.NewRetriever(app.VectorStore, llmClient, embCfg, cfg.Agents.RetrievalTopK)
	ingestor := appsvc.NewIngestor(app.VectorStore, llmClient, embCfg)
	requestRouter := appsvc.NewRouter(llmClient, routerCfg)
	dispatcher := appsvc.NewDispatcher(
		appsvc.NewPlanner(llmClient, chatCfg, cfg.Agents.DefaultPlanDays),
		appsvc.NewRagWriter(llmClient, chatCfg, retriever),
		appsvc.NewSeo(llmClient, chatCfg),
		appsvc.NewResearch(llmClient, chatCfg, searchClient),
	)

	entryRepo := repository.NewEntryRepository(app.MySQL)
	historyCache := cache.NewHistoryCache(
		app.Redis,
		time.Duration(cfg.Redis.HistoryTTLSeconds)*time.Second,
		time.Duration(cfg.Redis.HistoryDirtyTTLSeconds)*time.Second,
	)
	publisher := rabbitmqClient.NewEntryPublisher(app.MQConn, cfg.RabbitMQ.EntryPersistQueue)
	historyService := appsvc.NewHistoryService(entryRepo, publisher, historyCache)

	chatHandler := handler.NewChatHandler(requestRouter, dispatcher, historyService)
	documentsHandler := handler.NewDocumentsHandler(ingestor, pdfextract.Limits{
		MaxBytes: cfg.Upload.MaxBytes,
		MinBytes: cfg.Upload.MinBytes,
	})

	v1 := router.Group("/api/v1")
	chatGroup := v1.Group("/chat")
	chatGroup.POST("", chatHandler.Chat)
	chatGroup.GET("/history", chatHandler.GetHistory)
	chatGroup.DELETE("/history", chatHandler.ClearHistory)

	docsGroup := v1.Group("/documents")
	docsGroup.POST("", documentsHandler.Upload)
	docsGroup.GET("", documentsHandler.List)
	docsGroup.DELETE("", documentsHandler.DeleteAll)
	docsGroup.DELETE("/:name", documentsHandler.Delete)

	return router
}
