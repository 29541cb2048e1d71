package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListCategories(c *gin.Context) {
	categories, err := s.referenceSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (s *Server) ListServices(c *gin.Context) {
	services, err := s.referenceSvc.ListServices(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (s *Server) GetSystemDefaults(c *gin.Context) {
	defaults, stats, err := s.referenceSvc.SystemDefaults(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"system_defaults": defaults,
		"system_stats":    stats,
	})
}
