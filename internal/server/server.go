package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/santaradigital/backoffice/internal/catalog"
	catalogdomain "github.com/santaradigital/backoffice/internal/catalog/domain"
	"github.com/santaradigital/backoffice/internal/config"
	"github.com/santaradigital/backoffice/internal/content"
	contentdomain "github.com/santaradigital/backoffice/internal/content/domain"
	"github.com/santaradigital/backoffice/internal/invoice"
	invoicedomain "github.com/santaradigital/backoffice/internal/invoice/domain"
	"github.com/santaradigital/backoffice/internal/order"
	orderdomain "github.com/santaradigital/backoffice/internal/order/domain"
	"github.com/santaradigital/backoffice/internal/providers/email"
	"github.com/santaradigital/backoffice/internal/providers/pdf"
	"github.com/santaradigital/backoffice/internal/settings"
	settingsdomain "github.com/santaradigital/backoffice/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewHTTPMetrics),
	fx.Provide(registerGin),
	email.Module,
	pdf.Module,
	catalog.Module,
	order.Module,
	invoice.Module,
	content.Module,
	settings.Module,
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(MetricsMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	db          *gorm.DB
	catalogSvc  catalogdomain.Service
	orderSvc    orderdomain.Service
	invoiceSvc  invoicedomain.Service
	contentSvc  contentdomain.Service
	settingsSvc settingsdomain.Service
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	DB          *gorm.DB
	CatalogSvc  catalogdomain.Service
	OrderSvc    orderdomain.Service
	InvoiceSvc  invoicedomain.Service
	ContentSvc  contentdomain.Service
	SettingsSvc settingsdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		db:          p.DB,
		catalogSvc:  p.CatalogSvc,
		orderSvc:    p.OrderSvc,
		invoiceSvc:  p.InvoiceSvc,
		contentSvc:  p.ContentSvc,
		settingsSvc: p.SettingsSvc,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterRoutes() {
	s.registerPublicRoutes()
	s.registerAdminRoutes()
}

// registerPublicRoutes exposes the endpoints the landing page consumes:
// the active catalog, enabled content blocks, and order intake.
func (s *Server) registerPublicRoutes() {
	public := s.engine.Group("/public")

	public.GET("/services", s.ListPublicServices)
	public.GET("/content", s.GetPublicContent)
	public.POST("/orders", s.CreateOrder)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin")

	// -------- Services --------
	admin.GET("/services", s.ListServices)
	admin.POST("/services", s.CreateService)
	admin.GET("/services/:id", s.GetServiceByID)
	admin.PATCH("/services/:id", s.UpdateService)
	admin.DELETE("/services/:id", s.DeleteService)

	// -------- Orders --------
	admin.GET("/orders", s.ListOrders)
	admin.POST("/orders", s.CreateOrder)
	admin.GET("/orders/:id", s.GetOrderByID)
	admin.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	admin.PATCH("/orders/:id/amounts", s.UpdateOrderAmounts)

	// -------- Invoices --------
	admin.GET("/invoices", s.ListInvoices)
	admin.POST("/invoices", s.CreateInvoice)
	admin.GET("/invoices/:id", s.GetInvoiceByID)
	admin.PATCH("/invoices/:id/status", s.UpdateInvoiceStatus)
	admin.GET("/invoices/:id/pdf", s.DownloadInvoicePDF)
	admin.POST("/invoices/:id/send", s.SendInvoice)

	// -------- Landing content --------
	admin.GET("/content/sections", s.ListSections)
	admin.PUT("/content/sections", s.UpsertSection)
	admin.PUT("/content/sections/:id", s.UpsertSection)
	admin.DELETE("/content/sections/:id", s.DeleteSection)

	admin.GET("/content/testimonials", s.ListTestimonials)
	admin.PUT("/content/testimonials", s.UpsertTestimonial)
	admin.PUT("/content/testimonials/:id", s.UpsertTestimonial)
	admin.DELETE("/content/testimonials/:id", s.DeleteTestimonial)

	admin.GET("/content/footer", s.ListFooterColumns)
	admin.PUT("/content/footer", s.UpsertFooterColumn)
	admin.PUT("/content/footer/:id", s.UpsertFooterColumn)
	admin.DELETE("/content/footer/:id", s.DeleteFooterColumn)

	// -------- Settings --------
	admin.GET("/settings", s.GetSettings)
	admin.PUT("/settings", s.UpdateSettings)
}
