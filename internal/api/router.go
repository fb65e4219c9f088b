package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/pkg/logging"
)

const requestIDHeader = "X-Request-ID"

// NewRouter builds the REST engine. Extra routes, such as the MCP stream, are mounted by the caller.
func NewRouter(svc course.Service, log *logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader, "Mcp-Session-Id"},
		ExposeHeaders: []string{"Content-Length", requestIDHeader, "Mcp-Session-Id"},
		MaxAge:        12 * time.Hour,
	}))

	h := &Handler{svc: svc, log: log}

	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	v1.POST("/courses/search", h.SearchCourses)

	return router
}

// requestID propagates or assigns X-Request-ID
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", c.GetString("request_id"),
		}
		if status >= http.StatusInternalServerError {
			log.Error("request failed", kv...)
			return
		}
		log.Debug("request handled", kv...)
	}
}
