package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	contentdomain "github.com/santaradigital/backoffice/internal/content/domain"
)

func (s *Server) ListSections(c *gin.Context) {
	items, err := s.contentSvc.ListSections(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) UpsertSection(c *gin.Context) {
	var req contentdomain.UpsertSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.contentSvc.UpsertSection(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    item,
		"message": "Konten berhasil disimpan",
	})
}

func (s *Server) DeleteSection(c *gin.Context) {
	if err := s.contentSvc.DeleteSection(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Konten berhasil dihapus"})
}

func (s *Server) ListTestimonials(c *gin.Context) {
	items, err := s.contentSvc.ListTestimonials(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) UpsertTestimonial(c *gin.Context) {
	var req contentdomain.UpsertTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.contentSvc.UpsertTestimonial(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    item,
		"message": "Testimoni berhasil disimpan",
	})
}

func (s *Server) DeleteTestimonial(c *gin.Context) {
	if err := s.contentSvc.DeleteTestimonial(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Testimoni berhasil dihapus"})
}

func (s *Server) ListFooterColumns(c *gin.Context) {
	items, err := s.contentSvc.ListFooterColumns(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) UpsertFooterColumn(c *gin.Context) {
	var req contentdomain.UpsertFooterColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.contentSvc.UpsertFooterColumn(c.Request.Context(), strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    item,
		"message": "Footer berhasil disimpan",
	})
}

func (s *Server) DeleteFooterColumn(c *gin.Context) {
	if err := s.contentSvc.DeleteFooterColumn(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Footer berhasil dihapus"})
}
