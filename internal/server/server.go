// Package server exposes the processing pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caselens/verdict/internal/config"
	"github.com/caselens/verdict/internal/core"
	"github.com/caselens/verdict/internal/core/model"
	"github.com/caselens/verdict/internal/engine"
	"github.com/caselens/verdict/internal/llm"
)

const (
	serviceName    = "verdict"
	serviceVersion = "1.0.0"
)

type Server struct {
	processor *core.Processor
	cfg       *config.Config
	log       *zap.Logger
}

// New wires the full pipeline: LLM client (when a provider is
// configured), default engine registry and processor. Without a provider
// the AI-assisted engines report offline and every strategy degrades to
// its rule-based form.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize llm client: %w", err)
	}
	if client == nil {
		log.Info("no llm provider configured, ai-assisted engines offline")
	}

	registry, err := engine.NewDefaultRegistry(client, cfg.Processing.DisabledEngines)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine registry: %w", err)
	}

	processor := core.NewProcessor(registry, cfg.ProcessingBudget(), log)
	return &Server{processor: processor, cfg: cfg, log: log}, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/process", s.Process)
	r.GET("/health", s.Health)
	r.GET("/engines", s.Engines)
	r.GET("/stats", s.Stats)
	r.GET("/info", s.Info)

	return r
}

type ProcessRequest struct {
	Text    string `json:"text"`
	Options struct {
		RequiredAccuracy    string   `json:"required_accuracy"`
		MaxProcessingTimeMS int64    `json:"max_processing_time_ms"`
		PreferredEngines    []string `json:"preferred_engines"`
		DocumentType        string   `json:"document_type"`
		Complexity          string   `json:"complexity"`
	} `json:"options"`
}

func (s *Server) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
		return
	}

	accuracy := req.Options.RequiredAccuracy
	if accuracy == "" {
		accuracy = s.cfg.Processing.DefaultAccuracy
	}
	opts := model.ExtractionOptions{
		RequiredAccuracy: model.AccuracyLevel(accuracy),
		PreferredEngines: req.Options.PreferredEngines,
		DocumentType:     req.Options.DocumentType,
		Complexity:       model.Complexity(req.Options.Complexity),
	}
	if req.Options.MaxProcessingTimeMS > 0 {
		opts.MaxProcessingTime = time.Duration(req.Options.MaxProcessingTimeMS) * time.Millisecond
	}

	res, err := s.processor.ProcessDocument(c.Request.Context(), req.Text, opts)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.log.Error("failed to process document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request_id": uuid.NewString(),
		"result":     res,
	})
}

func (s *Server) Health(c *gin.Context) {
	engines := s.processor.EngineStatus()
	summary := make(map[string]model.HealthState, len(engines))
	available := 0
	for _, e := range engines {
		summary[e.Name] = e.Health
		if e.Health == model.HealthHealthy {
			available++
		}
	}

	status := "healthy"
	if available == 0 {
		status = "unhealthy"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"service": serviceName,
		"engines": summary,
	})
}

func (s *Server) Engines(c *gin.Context) {
	c.JSON(http.StatusOK, s.processor.EngineStatus())
}

func (s *Server) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.processor.Stats())
}

func (s *Server) Info(c *gin.Context) {
	engines := s.processor.EngineStatus()
	names := make([]string, 0, len(engines))
	for _, e := range engines {
		names = append(names, e.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"service":      "Verdict Legal Entity Consensus",
		"version":      serviceVersion,
		"capabilities": []string{"persons", "issues", "chronology_events", "authorities"},
		"engines":      names,
	})
}
