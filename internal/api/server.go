package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-crm-api/internal/api/handler"
	"github.com/vfg2006/lead-crm-api/internal/api/handler/router"
	"github.com/vfg2006/lead-crm-api/internal/config"
	"github.com/vfg2006/lead-crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/lead-crm-api/internal/usecases/exporting"
	"github.com/vfg2006/lead-crm-api/internal/usecases/importing"
	"github.com/vfg2006/lead-crm-api/internal/usecases/lead"
	"github.com/vfg2006/lead-crm-api/internal/usecases/seller"
	"github.com/vfg2006/lead-crm-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Services struct {
	DB            handler.Pinger
	Authenticator authenticating.Authenticator
	Leads         lead.LeadService
	Sellers       seller.SellerService
	Exporter      exporting.Exporter
	Importer      importing.Importer
	StatsWarmer   handler.StatsWarmer
}

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.Config, services Services) (*Server, error) {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}, nil
}

// NewHandler monta o roteador com a cadeia de middlewares globais
func NewHandler(cfg *config.Config, services Services) http.Handler {
	loginLimiter := middleware.NewRateLimiter(cfg.Auth.LoginRateLimitRPS, cfg.Auth.LoginRateLimitBurst)

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.DB)...),
		router.WithRoutes(handler.Metrics()...),
		router.WithRoutes(handler.Authentication(services.Authenticator, loginLimiter)...),
		router.WithRoutes(handler.Leads(services.Leads)...),
		router.WithRoutes(handler.Export(services.Exporter)...),
		router.WithRoutes(handler.Import(services.Importer)...),
		router.WithRoutes(handler.Sellers(services.Sellers)...),
		router.WithRoutes(handler.CronJobs(services.StatsWarmer)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.ClientIPMiddleware(cfg.Server.Proxies),
		middleware.LoggingMiddleware(),
		middleware.MetricsMiddleware(rt.RoutePattern),
		middleware.Cors(cfg.Cors.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
			serverErr <- err
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-serverErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
