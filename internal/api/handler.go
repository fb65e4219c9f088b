package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/course-aggregator/internal/domain"
	"github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/pkg/logging"
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems,omitempty"`
}

type Handler struct {
	svc course.Service
	log *logging.Logger
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"providers": h.svc.Providers(),
	})
}

// SearchCourses fans the request out to every provider and returns the per-provider buckets
func (h *Handler) SearchCourses(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	resp, err := h.svc.Search(c.Request.Context(), req)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid search request", Problems: verr.Problems})
			return
		}
		h.log.Error("search failed", "error", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "search failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
