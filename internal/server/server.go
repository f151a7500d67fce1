// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server is the HTTP transport adapter. It converts an inbound
// message payload into the canonical lookup request shape and returns
// the pipeline response verbatim; no lookup logic lives here.
package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/openplates/platewatch/internal/pipeline"
	"github.com/openplates/platewatch/pkg/types"
)

// lookupPayload is the canonical inbound message shape.
type lookupPayload struct {
	Text          string `json:"text" binding:"required"`
	RequesterID   string `json:"requester_id"`
	SourceChannel string `json:"source_channel"`
}

// Handler serves the lookup API.
type Handler struct {
	pipeline *pipeline.Pipeline
	log      zerolog.Logger
}

func NewHandler(p *pipeline.Pipeline, log zerolog.Logger) *Handler {
	return &Handler{pipeline: p, log: log}
}

// Router builds the gin engine with CORS and request logging applied.
func (h *Handler) Router(cfg types.ServerConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.requestLogger())

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", h.health)

	api := r.Group("/api/v1")
	{
		api.POST("/lookups", h.createLookup)
	}
	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) createLookup(c *gin.Context) {
	var payload lookupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		c.JSON(http.StatusBadRequest, errorResponse("text must not be empty"))
		return
	}

	req := pipeline.NewAPIRequest(payload.Text, payload.RequesterID, payload.SourceChannel)
	resp := h.pipeline.Process(c.Request.Context(), req)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
