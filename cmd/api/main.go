package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"google.golang.org/genai"

	"dellerose/agents"
	"dellerose/cmd/api/router"
	"dellerose/cmd/api/services"
	"dellerose/cmd/api/trace"
	"dellerose/config"
	"dellerose/db"
	_ "dellerose/docs" // swag will generate this package
	"dellerose/eventbus"
	"dellerose/internal/logger"
	"dellerose/models"
	"dellerose/monitoring"
	"dellerose/repositories"
	"dellerose/speech"
	"dellerose/workflow"
)

// @title           DelleRose.ai API
// @version         1.0
// @description     Voice-to-social-content orchestration backend
// @BasePath        /api/v1
func main() {
	config.InitApp()
	logger.InitFromEnv("LOG_LEVEL")
	cfg := config.GetConfig()

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize MongoDB:", err)
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" && !cfg.MockBriefEnabled() {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}

	var geminiClient *genai.Client
	var backend agents.Backend
	if apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
		if err != nil {
			log.Fatal("failed to initialize Gemini client:", err)
		}
		geminiClient = client
		geminiBackend, err := agents.NewGeminiBackend(ctx, apiKey)
		if err != nil {
			log.Fatal("failed to initialize Gemini backend:", err)
		}
		backend = geminiBackend
	}

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	var publisher eventbus.Publisher = eventbus.NopPublisher{}
	if cfg.Kafka.Brokers != "" {
		kafkaPublisher, err := eventbus.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Fatal("failed to initialize Kafka publisher:", err)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	briefRepo := repositories.NewBriefRepository(db.Database())
	postRepo := repositories.NewPostRepository(db.Database())
	profileRepo := repositories.NewProfileRepository(db.Database())
	aiLogRepo := repositories.NewAILogRepository(db.Database())

	recorder := newCallRecorder(aiLogRepo)
	briefGen := agents.NewBriefGenerator(backend, cfg.Gemini.BriefModel, cfg.MockBriefEnabled(), recorder)
	draftGen := agents.NewDraftGenerator(backend, cfg.Gemini.DraftModel, recorder)
	engine := agents.NewEngine(draftGen)
	transcriber := speech.NewTranscriber(geminiClient, cfg.Gemini.TranscribeModel, cfg.BrainDump.LanguageHint)
	snapshots := workflow.NewSnapshotStore(redisClient, 0)

	r := router.New(router.Deps{
		BrainDump: services.NewBrainDumpService(transcriber, briefGen, briefRepo, publisher),
		Drafts:    services.NewDraftService(engine, profileRepo, publisher),
		Plans:     services.NewPlanService(briefRepo, postRepo, publisher),
		Profile:   services.NewProfileService(profileRepo),
		Workflows: services.NewWorkflowService(briefRepo, snapshots),
		Redis:     redisClient,
		DevUserID: cfg.DevUserID,
	})

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "X-User-Id", "X-Request-Id"},
		AllowCredentials: true,
	})

	logger.Log.Infof("listening on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, corsWrapper.Handler(r)); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// newCallRecorder persists every LLM call to ai_logs and feeds the metrics.
// Recording failures are logged, never propagated into generation.
func newCallRecorder(repo *repositories.AILogRepository) agents.CallRecorder {
	return func(ctx context.Context, call agents.CallLog) {
		var callErr error
		if call.ErrorMessage != "" {
			callErr = errors.New(call.ErrorMessage)
		}
		monitoring.RecordLLMCall(call.ModelName, time.Duration(call.LatencyMs)*time.Millisecond,
			call.TokenUsage.InputTokens, call.TokenUsage.OutputTokens, callErr)

		entry := models.AILog{
			RequestID:      trace.RequestIDFromContext(ctx),
			ModelName:      call.ModelName,
			ModelVersion:   call.ModelVersion,
			InputTokens:    call.TokenUsage.InputTokens,
			OutputTokens:   call.TokenUsage.OutputTokens,
			TotalTokens:    call.TokenUsage.TotalTokens,
			DurationMs:     call.LatencyMs,
			InputPrompt:    call.Prompt,
			OutputResponse: call.Response,
			RequestedAt:    call.GeneratedAt.Add(-time.Duration(call.LatencyMs) * time.Millisecond),
			CompletedAt:    call.GeneratedAt,
		}
		if call.ErrorMessage != "" {
			msg := call.ErrorMessage
			entry.ErrorMessage = &msg
		}

		insertCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := repo.Insert(insertCtx, entry); err != nil {
			logger.Log.Warnf("persist ai log: %v", err)
		}
	}
}
