package cmd

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"geolookup/logger"
	"geolookup/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd)
		},
	}
	cmd.Flags().StringVar(&a.opts.Listen, "listen", "", "listen address, e.g. :8080")
	return cmd
}

func (a *app) serve(cmd *cobra.Command) error {
	if a.logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	locator, err := newLocator(a.cfg, a.logger)
	if err != nil {
		return err
	}
	s, err := server.New(a.cfg.Vendor, locator, a.cfg.Server, logger.Component(a.logger, "server"))
	if err != nil {
		return err
	}
	s.Lang = a.cfg.Lang
	s.Fields = a.cfg.Fields

	a.logger.WithFields(logrus.Fields{
		"vendor":            a.cfg.Vendor,
		"cacheSize":         a.cfg.Server.CacheSize,
		"recvProxyProtocol": a.cfg.Server.RecvProxyProtocol,
		"trustedProxies":    a.cfg.Server.TrustedProxies,
	}).Info("Server configuration")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}
