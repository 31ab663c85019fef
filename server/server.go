package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"geolookup/common"
	"geolookup/config"
	"geolookup/geo"
	"geolookup/metrics"
)

const shutdownTimeout = 10 * time.Second

// Server answers lookups over HTTP for one vendor.
type Server struct {
	Vendor      string
	Locator     *geo.CachedLocator
	Lang        string
	Fields      []string
	Config      config.ServerConfig
	NetListener NetListener
	CheckIps    common.CheckIP
	Metrics     *metrics.Metrics
	Logger      logrus.FieldLogger
}

// New wraps next in a cache sized from cfg; a zero size disables caching.
func New(vendor string, next geo.Locator, cfg config.ServerConfig, log logrus.FieldLogger) (*Server, error) {
	cached := &geo.CachedLocator{Next: next}
	if cfg.CacheSize > 0 {
		var err error
		if cached, err = geo.NewCachedLocator(next, cfg.CacheSize); err != nil {
			return nil, fmt.Errorf("failed to create lookup cache: %w", err)
		}
	}
	return &Server{
		Vendor:      vendor,
		Locator:     cached,
		Config:      cfg,
		NetListener: &RealNetListener{},
		CheckIps:    &common.CheckIPs{Logger: log},
		Metrics:     metrics.NewMetrics(),
		Logger:      log,
	}, nil
}

// Router builds the HTTP handler. Forwarding headers are never trusted:
// client addresses come from the socket, which the PROXY protocol listener
// has already rewritten for trusted upstreams.
func (s *Server) Router() (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to configure trusted proxies: %w", err)
	}

	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(StructuredLogger(s.Logger))
	router.Use(HTTPMetrics(s.Metrics))

	router.GET("/healthz", s.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/v1")
	{
		v1.GET("/lookup", s.lookupSelf)
		v1.GET("/lookup/:subject", s.lookupSubject)
	}
	return router, nil
}

// Serve listens on Config.Listen and blocks until ctx ends, then drains
// in-flight requests.
func (s *Server) Serve(ctx context.Context) error {
	router, err := s.Router()
	if err != nil {
		return err
	}
	l, err := s.NetListener.Listen("tcp", s.Config.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Config.Listen, err)
	}
	if s.Config.RecvProxyProtocol {
		l = wrapProxyProtocol(l, s.CheckIps, s.Config.TrustedProxies, s.Config.ProxyProtoTimeout, s.Logger)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.WithFields(logrus.Fields{
			"addr":   l.Addr().String(),
			"vendor": s.Vendor,
		}).Info("Starting server")
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
