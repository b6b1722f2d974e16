package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/santaradigital/backoffice/internal/invoice/domain"
)

func (s *Server) ListInvoices(c *gin.Context) {
	var req invoicedomain.ListInvoiceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items, err := s.invoiceSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		// A settlement failure still produced an invoice; return it with a
		// warning instead of an error status so the admin sees the result.
		if errors.Is(err, invoicedomain.ErrSettlementFailed) {
			c.JSON(http.StatusCreated, gin.H{
				"data":    item,
				"message": "Invoice berhasil dibuat",
				"warning": "Pembaruan uang muka pesanan gagal, mohon periksa pesanan terkait",
			})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":    item,
		"message": "Invoice berhasil dibuat",
	})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	item, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

type updateInvoiceStatusRequest struct {
	Status invoicedomain.InvoiceStatus `json:"status"`
}

func (s *Server) UpdateInvoiceStatus(c *gin.Context) {
	var req updateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.invoiceSvc.UpdateStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    item,
		"message": "Status invoice berhasil diperbarui",
	})
}

func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	rendered, err := s.invoiceSvc.Render(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rendered.Filename))
	c.Data(http.StatusOK, "application/pdf", rendered.Content)
}

func (s *Server) SendInvoice(c *gin.Context) {
	item, err := s.invoiceSvc.Send(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    item,
		"message": "Invoice berhasil dikirim",
	})
}
