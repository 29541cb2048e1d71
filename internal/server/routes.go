package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListRoutes(c *gin.Context) {
	routes, err := s.routeSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"routes": routes})
}
