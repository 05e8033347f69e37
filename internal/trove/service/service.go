package service

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/haideraly09/trove-api-integration/internal/pkg/logger"
	"github.com/haideraly09/trove-api-integration/internal/pkg/response"
	"github.com/haideraly09/trove-api-integration/internal/trove/client"
	"github.com/haideraly09/trove-api-integration/internal/trove/types"
)

// TroveService exposes the search proxy and its diagnostic endpoints
type TroveService struct {
	client *client.Client
	logger *logger.Logger
}

// NewTroveService creates the Trove HTTP service
func NewTroveService(c *client.Client, log *logger.Logger) *TroveService {
	return &TroveService{client: c, logger: log}
}

// RegisterRoutes wires the service's endpoints onto the router
func (s *TroveService) RegisterRoutes(r gin.IRouter) {
	r.GET("/", s.Root)
	r.GET("/api/trove", s.Search)
	r.GET("/api/test-key", s.TestKey)
	r.GET("/api/check-trove-status", s.CheckStatus)
	r.GET("/api/test-direct-trove", s.TestDirect)
}

// Root reports liveness and whether an API key is configured
func (s *TroveService) Root(c *gin.Context) {
	response.OK(c, gin.H{
		"message":    "Trove API backend is running",
		"hasApiKey":  s.client.HasAPIKey(),
		"keyPreview": s.client.KeyPreview(),
	})
}

// Search proxies a search request to Trove and returns the normalized
// envelope
func (s *TroveService) Search(c *gin.Context) {
	req := &types.SearchRequest{Query: c.Query("q")}
	if n, err := strconv.Atoi(c.Query("n")); err == nil {
		req.Limit = n
	}
	if offset, err := strconv.Atoi(c.Query("s")); err == nil {
		req.Offset = offset
	}

	envelope, err := s.client.Search(c.Request.Context(), req)
	if err != nil {
		s.handleSearchError(c, err)
		return
	}

	response.OK(c, envelope)
}

func (s *TroveService) handleSearchError(c *gin.Context, err error) {
	var upstream *types.UpstreamError

	switch {
	case errors.Is(err, types.ErrAPIKeyMissing):
		response.InternalError(c, "API key not configured")

	case errors.Is(err, types.ErrEmptyQuery):
		response.BadRequest(c, "Search query is required")

	case errors.As(err, &upstream):
		s.logger.WithContext(c.Request.Context()).Error("trove search failed",
			zap.Int("status", upstream.StatusCode),
			zap.Int("attempts", upstream.Attempts),
			zap.String("detail", upstream.Detail),
		)
		if upstream.Temporary() {
			response.ErrorWithFields(c, http.StatusServiceUnavailable,
				"Trove API is currently unavailable. This is a temporary issue with their servers. Please try again in a few minutes.",
				gin.H{
					"attempts":   upstream.Attempts,
					"suggestion": "You can check Trove's status at https://trove.nla.gov.au",
				})
			return
		}
		response.ErrorWithFields(c, upstream.StatusCode,
			"Trove API error: "+upstream.Detail,
			gin.H{"attempts": upstream.Attempts})

	default:
		response.InternalError(c, "Server error: "+err.Error())
	}
}

// CheckStatus probes upstream health. It always answers 200; failure is
// reported in the body so the front end can render an outage banner.
func (s *TroveService) CheckStatus(c *gin.Context) {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	report, err := s.client.Probe(c.Request.Context(), "test", 1)
	if err != nil {
		response.OK(c, gin.H{
			"isUp":       false,
			"statusCode": "ERROR",
			"message":    "Cannot connect to Trove API v3: " + err.Error(),
			"timestamp":  timestamp,
			"version":    "v3",
		})
		return
	}

	message := "Trove API v3 is working normally"
	if !report.OK {
		if report.StatusCode == http.StatusServiceUnavailable {
			message = "Trove API v3 is temporarily unavailable (503)"
		} else {
			message = fmt.Sprintf("Trove API v3 returned error: %d", report.StatusCode)
		}
	}

	response.OK(c, gin.H{
		"isUp":       report.OK,
		"statusCode": report.StatusCode,
		"statusText": report.StatusText,
		"timestamp":  timestamp,
		"version":    "v3",
		"message":    message,
	})
}

// TestKey probes upstream with a fixed query to verify the configured key
func (s *TroveService) TestKey(c *gin.Context) {
	if !s.client.HasAPIKey() {
		response.InternalError(c, "API key not found")
		return
	}

	report, err := s.client.Probe(c.Request.Context(), "australia", 1)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	if !report.OK {
		c.JSON(report.StatusCode, gin.H{
			"status": "API key test failed",
			"error":  fmt.Sprintf("Status: %d", report.StatusCode),
		})
		return
	}

	hasResults := report.HasArticles || report.HasWorks
	status := "API key valid but no results"
	if hasResults {
		status = "API key is working with v3"
	}

	response.OK(c, gin.H{
		"status":     status,
		"keyPrefix":  s.client.KeyPreview(),
		"hasResults": hasResults,
		"responseStructure": gin.H{
			"hasCategory": report.HasCategory,
			"hasArticles": report.HasArticles,
			"hasWorks":    report.HasWorks,
		},
	})
}

// TestDirect probes upstream with a caller-supplied query
func (s *TroveService) TestDirect(c *gin.Context) {
	if !s.client.HasAPIKey() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "API key not configured",
		})
		return
	}

	query := c.DefaultQuery("q", "melbourne")

	report, err := s.client.Probe(c.Request.Context(), query, 1)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
			"version": "v3",
		})
		return
	}

	if !report.OK {
		c.JSON(report.StatusCode, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Status: %d", report.StatusCode),
			"version": "v3",
		})
		return
	}

	response.OK(c, gin.H{
		"success":      report.HasArticles || report.HasWorks,
		"status":       report.StatusCode,
		"query":        query,
		"resultsFound": report.Total,
		"version":      "v3",
		"responseStructure": gin.H{
			"hasCategory": report.HasCategory,
			"hasArticles": report.HasArticles,
			"hasWorks":    report.HasWorks,
		},
	})
}
