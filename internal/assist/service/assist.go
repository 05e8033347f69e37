package service

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haideraly09/trove-api-integration/internal/assist/biz"
	"github.com/haideraly09/trove-api-integration/internal/pkg/logger"
	"github.com/haideraly09/trove-api-integration/internal/pkg/response"
)

// AssistService exposes the AI research-assist endpoints
type AssistService struct {
	uc     *biz.AssistUseCase
	logger *logger.Logger
}

// NewAssistService creates the assist HTTP service
func NewAssistService(uc *biz.AssistUseCase, log *logger.Logger) *AssistService {
	return &AssistService{uc: uc, logger: log}
}

// RegisterRoutes wires the assist endpoints onto the router
func (s *AssistService) RegisterRoutes(r gin.IRouter) {
	assist := r.Group("/api/assist")
	assist.POST("/enhance", s.Enhance)
	assist.POST("/summarize", s.Summarize)
	assist.POST("/categorize", s.Categorize)
	assist.POST("/translate", s.Translate)
	assist.GET("/suggestions", s.Suggestions)
	assist.GET("/status", s.Status)
}

type enhanceRequest struct {
	Query string `json:"query" binding:"required"`
}

type resultsRequest struct {
	Results []biz.ResultInput `json:"results"`
}

// Enhance expands a search query with historical context
func (s *AssistService) Enhance(c *gin.Context) {
	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	enhanced, err := s.uc.EnhanceQuery(c.Request.Context(), req.Query)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.OK(c, gin.H{
		"original": req.Query,
		"enhanced": enhanced,
	})
}

// Summarize produces a structured summary of search results
func (s *AssistService) Summarize(c *gin.Context) {
	var req resultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	summary, err := s.uc.Summarize(c.Request.Context(), req.Results)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"summary": summary})
}

// Categorize buckets search results into history categories
func (s *AssistService) Categorize(c *gin.Context) {
	var req resultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	categories, err := s.uc.Categorize(c.Request.Context(), req.Results)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"categories": categories})
}

// Translate glosses archaic terminology found in search results
func (s *AssistService) Translate(c *gin.Context) {
	var req resultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	content, err := s.uc.ExplainTerms(c.Request.Context(), req.Results)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.OK(c, gin.H{
		"type":      "translation",
		"content":   content,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Suggestions proposes complete search queries for a partial one
func (s *AssistService) Suggestions(c *gin.Context) {
	suggestions, err := s.uc.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.OK(c, gin.H{"suggestions": suggestions})
}

// Status reports whether the assist API is configured and reachable
func (s *AssistService) Status(c *gin.Context) {
	if !s.uc.Enabled() {
		response.OK(c, gin.H{"configured": false, "connected": false})
		return
	}

	connected := s.uc.CheckConnection(c.Request.Context())
	response.OK(c, gin.H{"configured": true, "connected": connected})
}

func (s *AssistService) handleError(c *gin.Context, err error) {
	if errors.Is(err, biz.ErrNotConfigured) {
		response.Error(c, http.StatusInternalServerError, "AI key not configured")
		return
	}
	response.InternalError(c, "Server error: "+err.Error())
}
