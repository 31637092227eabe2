package main

import (
	"context"
	"log"
	"os"

	"medextract/internal/api"
	"medextract/internal/config"
	"medextract/internal/service/agent"
	"medextract/internal/service/ai"
	"medextract/internal/service/medical"
	"medextract/internal/service/transcribe"
	"medextract/internal/session"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := os.Getenv("MEDEXTRACT_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	provider := cfg.BasicConfig.Provider
	provCfg := cfg.Provider(provider)
	if provCfg.APIKey == "" {
		log.Printf("warning: no API key configured for provider %s", provider)
	}

	ctx := context.Background()
	chatModel, err := ai.NewChatModel(ctx, cfg, provider)
	if err != nil {
		log.Fatalf("init chat model: %v", err)
	}

	// Structured output and transcription always go through the OpenAI API,
	// independently of which provider drives the agent router.
	openaiCfg := cfg.Provider("openai")
	medicalService := medical.NewService(ai.NewStructuredClient(openaiCfg))
	router, err := agent.NewRouter(ctx, chatModel, medicalService)
	if err != nil {
		log.Fatalf("init agent router: %v", err)
	}
	whisper := transcribe.NewWhisper(openaiCfg, cfg.BasicConfig.TranscriptionModel)

	handlers := api.NewHandler(router, medicalService, whisper, session.NewRegistry(), provCfg.Model)

	// RegisterRoutes installs the JSON recovery middleware, so the engine
	// only needs the request logger here.
	engine := gin.New()
	engine.Use(gin.Logger())
	handlers.RegisterRoutes(engine)

	addr := cfg.BasicConfig.ServerAddress
	if addr == "" {
		addr = ":5000"
	}

	log.Printf("Starting Medical Information Extraction API on %s", addr)
	log.Printf("Available endpoints:")
	log.Printf("  GET  /health - Health check")
	log.Printf("  POST /api/chat - Main chat interface")
	log.Printf("  POST /api/extract - Extract medical information")
	log.Printf("  POST /api/diagnose - Generate diagnosis")
	log.Printf("  POST /api/transcribe - Transcribe uploaded audio")
	log.Printf("  POST /api/transcribe-url - Transcribe audio from URL")
	log.Printf("  GET  /api/sessions - Get active sessions")
	log.Printf("  GET  /api/status - Get system status")

	if err := engine.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
