package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/railzwaylabs/railzway-stripe/internal/config"
	paymentdomain "github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const requestIDHeader = "X-Request-ID"

var Module = fx.Module("http.server",
	fx.Provide(NewServer),
	fx.Invoke(Start),
)

type Params struct {
	fx.In

	Cfg        config.Config
	Log        *zap.Logger
	DB         *gorm.DB
	PaymentSvc paymentdomain.Service
	Registry   *prometheus.Registry
}

type Server struct {
	cfg        config.Config
	log        *zap.Logger
	db         *gorm.DB
	paymentSvc paymentdomain.Service
	gatherer   prometheus.Gatherer
}

func NewServer(p Params) *Server {
	// The gorm metrics plugin registers on the default registry.
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if p.Registry != nil {
		gatherer = prometheus.Gatherers{p.Registry, prometheus.DefaultGatherer}
	}
	return &Server{
		cfg:        p.Cfg,
		log:        p.Log.Named("http"),
		db:         p.DB,
		paymentSvc: p.PaymentSvc,
		gatherer:   gatherer,
	}
}

// Engine builds the router with every route registered.
func (s *Server) Engine() *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.RequestID(), s.AccessLog())

	r.GET("/ready", s.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.POST("/payment-methods", s.CreatePaymentMethod)
		api.GET("/payment-methods", s.ListPaymentMethods)
		api.GET("/payment-methods/:id", s.GetPaymentMethod)
		api.PATCH("/payment-methods/:id", s.UpdatePaymentMethod)
		api.DELETE("/payment-methods/:id", s.DeletePaymentMethod)
		api.GET("/payment-methods/:id/intents/:intent_id", s.GetPaymentIntent)

		api.GET("/payments/:id/intent", s.GetPaymentIntentReference)
		api.POST("/payments/:id/refunds", s.RefundPayment)

		api.GET("/orders/:id/previous-sources", s.ListPreviousSources)
		api.GET("/refund-reason", s.GetRefundReason)
	}

	return r
}

func (s *Server) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDHeader)),
		)
	}
}

func (s *Server) Ready(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		s.log.Warn("readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Start serves HTTP for the lifetime of the fx app.
func Start(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           s.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			s.log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
