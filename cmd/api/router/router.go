package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson"

	"dellerose/cmd/api/handlers"
	"dellerose/cmd/api/middleware"
	"dellerose/cmd/api/services"
	"dellerose/db"
	_ "dellerose/docs"
	"dellerose/monitoring"
)

// Deps carries the wired service layer into the router.
type Deps struct {
	BrainDump *services.BrainDumpService
	Drafts    *services.DraftService
	Plans     *services.PlanService
	Profile   *services.ProfileService
	Workflows *services.WorkflowService

	Redis     goredis.UniversalClient
	DevUserID string
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())
	r.Use(monitoring.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := db.Database().RunCommand(context.Background(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		if deps.Redis != nil {
			if err := deps.Redis.Ping(c.Request.Context()).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "redis": "down", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", monitoring.Handler())

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes, caller identity required
	api := r.Group("/api/v1")
	api.Use(middleware.Identity(deps.DevUserID))
	{
		api.POST("/brain-dump/transcribe", handlers.TranscribeHandler(deps.BrainDump))
		api.POST("/brain-dump/analyze", handlers.AnalyzeHandler(deps.BrainDump))

		api.POST("/workflows/:id/drafts", handlers.GenerateDraftsHandler(deps.Drafts))
		api.POST("/workflows/:id/drafts/:platform/regenerate", handlers.RegenerateDraftHandler(deps.Drafts))

		api.PUT("/workflows/:id/plans", handlers.UpsertPlanHandler(deps.Plans))
		api.PATCH("/workflows/:id/plans/:platform", handlers.UpdatePlanStatusHandler(deps.Plans))
		api.GET("/plans/scheduled", handlers.ListScheduledPlansHandler(deps.Plans))

		api.GET("/workflows", handlers.ListWorkflowsHandler(deps.Workflows))
		api.GET("/workflows/:id/snapshot", handlers.GetSnapshotHandler(deps.Workflows))
		api.PUT("/workflows/:id/snapshot", handlers.SaveSnapshotHandler(deps.Workflows))

		api.GET("/profile", handlers.GetProfileHandler(deps.Profile))
		api.PUT("/profile", handlers.UpsertProfileHandler(deps.Profile))
	}

	return r
}
