package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/santaradigital/backoffice/internal/catalog/domain"
	contentdomain "github.com/santaradigital/backoffice/internal/content/domain"
)

// ListPublicServices returns the active catalog for the landing page.
func (s *Server) ListPublicServices(c *gin.Context) {
	items, err := s.catalogSvc.List(c.Request.Context(), catalogdomain.ListOfferingRequest{ActiveOnly: true})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GetPublicContent returns everything the landing page renders in one
// response: enabled sections, testimonials, and footer columns.
func (s *Server) GetPublicContent(c *gin.Context) {
	ctx := c.Request.Context()

	sections, err := s.contentSvc.ListSections(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	enabled := make([]contentdomain.LandingSection, 0, len(sections))
	for _, section := range sections {
		if section.IsEnabled {
			enabled = append(enabled, section)
		}
	}

	testimonials, err := s.contentSvc.ListTestimonials(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	footer, err := s.contentSvc.ListFooterColumns(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"sections":     enabled,
			"testimonials": testimonials,
			"footer":       footer,
		},
	})
}
