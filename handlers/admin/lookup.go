package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/watchdeck/web-ui/models"
)

func (s *Handler) lookup(c *gin.Context) {
	if s.oracle == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lookup is not configured"})
		return
	}
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	ct := models.ContentType(c.PostForm("type"))
	if !ct.Valid() {
		ct = models.ContentTypeMovie
	}
	d, err := s.oracle.LookupTitle(c.Request.Context(), name, ct)
	if err != nil {
		log.WithError(err).WithField("name", name).Error("failed to lookup title")
		c.JSON(http.StatusBadGateway, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Handler) search(c *gin.Context) {
	if s.oracle == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lookup is not configured"})
		return
	}
	query := strings.TrimSpace(c.PostForm("query"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	ct := models.ContentType(c.PostForm("type"))
	if !ct.Valid() {
		ct = models.ContentTypeMovie
	}
	matches, err := s.oracle.SearchTitles(c.Request.Context(), query, ct)
	if err != nil {
		log.WithError(err).WithField("query", query).Error("failed to search titles")
		c.JSON(http.StatusBadGateway, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": matches})
}

func (s *Handler) trailer(c *gin.Context) {
	if s.oracle == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lookup is not configured"})
		return
	}
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	url, err := s.oracle.FindTrailer(c.Request.Context(), name)
	if err != nil {
		log.WithError(err).WithField("name", name).Error("failed to find trailer")
		c.JSON(http.StatusBadGateway, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trailerUrl": url})
}
