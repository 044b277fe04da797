// Package devproxy serves the local development proxy that forwards an
// /api prefix to the deployed backend.
package devproxy

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nadiahindrianti/shesafe/internal/infrastructure/config"
	"github.com/nadiahindrianti/shesafe/internal/infrastructure/logger"
)

// MetricProxyRequestsTotal counts proxied requests
const MetricProxyRequestsTotal = "shesafe_proxy_requests_total"

// Server is the development proxy
type Server struct {
	cfg      config.ProxyConfig
	engine   *gin.Engine
	limiter  *RateLimiter
	registry *prometheus.Registry
	logger   *zap.Logger
	requests *prometheus.CounterVec
}

// New builds the proxy. registry may be shared with other collectors and
// is served on /metrics; nil creates a private one.
func New(cfg config.ProxyConfig, log *zap.Logger, registry *prometheus.Registry) (*Server, error) {
	target, err := parseTarget(cfg.Target)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	s := &Server{
		cfg:      cfg,
		limiter:  NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		registry: registry,
		logger:   log,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricProxyRequestsTotal,
				Help: "Total number of requests forwarded by the development proxy",
			},
			[]string{"method", "status"},
		),
	}
	if err := registry.Register(s.requests); err != nil {
		return nil, fmt.Errorf("registering proxy metrics: %w", err)
	}

	engine := gin.New()
	engine.Use(logger.RequestID(), logger.GinMiddleware(log), logger.Recovery(log))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"target": target.String(),
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	proxy := NewReverseProxy(target, cfg.Prefix, log)
	forward := func(c *gin.Context) {
		proxy.ServeHTTP(c.Writer, c.Request)
		s.requests.WithLabelValues(c.Request.Method, fmt.Sprintf("%d", c.Writer.Status())).Inc()
	}

	api := engine.Group(cfg.Prefix, RateLimit(s.limiter))
	api.Any("", forward)
	api.Any("/*path", forward)

	s.engine = engine
	return s, nil
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	sweep := time.NewTicker(time.Minute)
	defer sweep.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Proxy starting",
			zap.String("addr", ln.Addr().String()),
			zap.String("prefix", s.cfg.Prefix),
			zap.String("target", s.cfg.Target),
		)
		errCh <- srv.Serve(ln)
	}()

	for {
		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-sweep.C:
			s.limiter.Sweep()
		case <-ctx.Done():
			s.logger.Info("Shutting down proxy...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down proxy: %w", err)
			}
			s.logger.Info("Proxy exited gracefully")
			return nil
		}
	}
}
