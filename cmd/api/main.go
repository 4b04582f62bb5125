package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-crm-api/infrastructure/cache"
	"github.com/vfg2006/lead-crm-api/infrastructure/database"
	"github.com/vfg2006/lead-crm-api/infrastructure/repository"
	"github.com/vfg2006/lead-crm-api/internal/api"
	"github.com/vfg2006/lead-crm-api/internal/config"
	"github.com/vfg2006/lead-crm-api/internal/scheduler"
	"github.com/vfg2006/lead-crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/lead-crm-api/internal/usecases/exporting"
	"github.com/vfg2006/lead-crm-api/internal/usecases/importing"
	"github.com/vfg2006/lead-crm-api/internal/usecases/lead"
	"github.com/vfg2006/lead-crm-api/internal/usecases/seller"
	"github.com/vfg2006/lead-crm-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel, cfg.App.Env)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconn(ctx, cfg.Database)
	defer conn.Close()

	redisClient := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)
	if redisClient != nil {
		defer redisClient.Close()
	}
	statsCache := cache.NewStatsCache(redisClient, cfg.Cache.StatsCacheTTL)

	leadRepo := repository.NewLeadRepository(conn)
	sellerRepo := repository.NewSellerRepository(conn)

	authenticator := authenticating.NewService(cfg)
	leadService := lead.NewService(leadRepo, statsCache, cfg)
	sellerService := seller.NewService(sellerRepo, statsCache)
	exporter := exporting.NewService(leadRepo, cfg)
	importer := importing.NewService(leadService)

	statsWarmupService := scheduler.NewStatsWarmupService(leadService, cfg)
	if err := statsWarmupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de aquecimento de estatísticas")
	} else {
		logrus.Info("Agendador de aquecimento de estatísticas iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		DB:            conn,
		Authenticator: authenticator,
		Leads:         leadService,
		Sellers:       sellerService,
		Exporter:      exporter,
		Importer:      importer,
		StatsWarmer:   statsWarmupService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// dbconn cria a conexão com o banco configurado
func dbconn(ctx context.Context, dbConfig config.Database) *database.Connection {
	conn, err := database.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao banco de dados")
	}

	logrus.WithField("driver", conn.Driver()).Info("Conexão com o banco de dados estabelecida com sucesso")
	return conn
}
