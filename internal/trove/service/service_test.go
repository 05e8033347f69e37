package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haideraly09/trove-api-integration/internal/pkg/logger"
	"github.com/haideraly09/trove-api-integration/internal/trove/client"
	"github.com/haideraly09/trove-api-integration/internal/trove/types"
)

const articleBody = `{"category":[{"records":{"article":[{"id":"x","heading":"H","date":"1901","category":"newspaper"}],"total":1}}]}`

func newTestRouter(t *testing.T, upstreamURL, apiKey string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "console"})
	require.NoError(t, err)

	c, err := client.New(&types.ClientConfig{
		APIHost:      upstreamURL,
		APIKey:       apiKey,
		Timeout:      2,
		RetryBackoff: 1,
	}, log)
	require.NoError(t, err)

	router := gin.New()
	NewTroveService(c, log).RegisterRoutes(router)
	return router
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSearch_EmptyQueryIs400(t *testing.T) {
	var calls int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, "test-key")

	for _, path := range []string{"/api/trove", "/api/trove?q=", "/api/trove?q=%20%20"} {
		w := doGet(router, path)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Search query is required", decodeBody(t, w)["error"])
	}
	assert.Zero(t, calls) // validation failures never reach upstream
}

func TestSearch_MissingKeyIs500(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, "")

	w := doGet(router, "/api/trove?q=eureka")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "API key not configured", decodeBody(t, w)["error"])
}

func TestSearch_Success(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleBody))
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, "test-key")

	w := doGet(router, "/api/trove?q=gundagai&n=5")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "gundagai", body["query"])

	resp := body["response"].(map[string]interface{})
	assert.EqualValues(t, 1, resp["numFound"])
	assert.EqualValues(t, 0, resp["start"])

	docs := resp["docs"].([]interface{})
	require.Len(t, docs, 1)
	doc := docs[0].(map[string]interface{})
	assert.Equal(t, "x", doc["id"])
	assert.Equal(t, "H", doc["title"])
	assert.Equal(t, "newspaper", doc["type"])
	assert.Equal(t, "", doc["troveUrl"])
}

func TestSearch_UpstreamUnavailable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, "test-key")

	start := time.Now()
	w := doGet(router, "/api/trove?q=eureka")
	elapsed := time.Since(start)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 3, body["attempts"])
	assert.Contains(t, body["error"], "temporary")
	assert.Contains(t, body["suggestion"], "https://trove.nla.gov.au")

	// Two 1s backoffs were configured; well under the client timeout.
	assert.GreaterOrEqual(t, elapsed, 2*time.Second)
}

func TestSearch_UpstreamPermanentError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, "test-key")

	w := doGet(router, "/api/trove?q=eureka")
	assert.Equal(t, http.StatusTeapot, w.Code)

	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "Trove API error:")
	assert.Contains(t, body["error"], "short and stout")
	assert.EqualValues(t, 1, body["attempts"])
}

func TestRoot(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer upstream.Close()

	router := newTestRouter(t, upstream.URL, "abcdefghijkl")

	w := doGet(router, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["hasApiKey"])
	assert.Equal(t, "abcdefgh...", body["keyPreview"])
	assert.NotEmpty(t, body["message"])
}

func TestCheckStatus_AlwaysHTTP200(t *testing.T) {
	t.Run("upstream healthy", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(articleBody))
		}))
		defer upstream.Close()

		w := doGet(newTestRouter(t, upstream.URL, "test-key"), "/api/check-trove-status")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["isUp"])
		assert.EqualValues(t, 200, body["statusCode"])
		assert.Equal(t, "v3", body["version"])
		assert.NotEmpty(t, body["timestamp"])
	})

	t.Run("upstream 503", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer upstream.Close()

		w := doGet(newTestRouter(t, upstream.URL, "test-key"), "/api/check-trove-status")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, false, body["isUp"])
		assert.Contains(t, body["message"], "temporarily unavailable")
	})

	t.Run("upstream unreachable", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		upstream.Close()

		w := doGet(newTestRouter(t, upstream.URL, "test-key"), "/api/check-trove-status")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, false, body["isUp"])
		assert.Equal(t, "ERROR", body["statusCode"])
	})
}

func TestTestKey(t *testing.T) {
	t.Run("valid key with results", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "australia", r.URL.Query().Get("q"))
			assert.Equal(t, "1", r.URL.Query().Get("n"))
			w.Write([]byte(articleBody))
		}))
		defer upstream.Close()

		w := doGet(newTestRouter(t, upstream.URL, "test-key"), "/api/test-key")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["hasResults"])
		structure := body["responseStructure"].(map[string]interface{})
		assert.Equal(t, true, structure["hasArticles"])
		assert.Equal(t, false, structure["hasWorks"])
	})

	t.Run("no key configured", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer upstream.Close()

		w := doGet(newTestRouter(t, upstream.URL, ""), "/api/test-key")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "API key not found", decodeBody(t, w)["error"])
	})

	t.Run("rejected key", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer upstream.Close()

		w := doGet(newTestRouter(t, upstream.URL, "bad-key"), "/api/test-key")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "API key test failed", decodeBody(t, w)["status"])
	})
}

func TestTestDirect(t *testing.T) {
	t.Run("default query", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "melbourne", r.URL.Query().Get("q"))
			w.Write([]byte(articleBody))
		}))
		defer upstream.Close()

		w := doGet(newTestRouter(t, upstream.URL, "test-key"), "/api/test-direct-trove")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "melbourne", body["query"])
		assert.EqualValues(t, 1, body["resultsFound"])
		assert.Equal(t, "v3", body["version"])
	})

	t.Run("caller query", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "ballarat", r.URL.Query().Get("q"))
			w.Write([]byte(articleBody))
		}))
		defer upstream.Close()

		w := doGet(newTestRouter(t, upstream.URL, "test-key"), "/api/test-direct-trove?q=ballarat")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ballarat", decodeBody(t, w)["query"])
	})

	t.Run("no key configured", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer upstream.Close()

		w := doGet(newTestRouter(t, upstream.URL, ""), "/api/test-direct-trove")
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "API key not configured", body["error"])
	})
}
