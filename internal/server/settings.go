package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	settingsdomain "github.com/santaradigital/backoffice/internal/settings/domain"
)

func (s *Server) GetSettings(c *gin.Context) {
	item, err := s.settingsSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

func (s *Server) UpdateSettings(c *gin.Context) {
	var req settingsdomain.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.settingsSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    item,
		"message": "Pengaturan berhasil disimpan",
	})
}
