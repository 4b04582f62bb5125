// Command leadimport carrega leads de um arquivo CSV direto no banco, com as mesmas
// regras de POST /api/import/leads.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/vfg2006/lead-crm-api/infrastructure/cache"
	"github.com/vfg2006/lead-crm-api/infrastructure/database"
	"github.com/vfg2006/lead-crm-api/infrastructure/repository"
	"github.com/vfg2006/lead-crm-api/internal/config"
	"github.com/vfg2006/lead-crm-api/internal/domain"
	"github.com/vfg2006/lead-crm-api/internal/usecases/importing"
	"github.com/vfg2006/lead-crm-api/internal/usecases/lead"
	"github.com/vfg2006/lead-crm-api/pkg/log"
)

type options struct {
	file    string
	timeout time.Duration
	verbose bool
}

func parseOptions(args []string) (options, error) {
	var opts options

	flags := pflag.NewFlagSet("leadimport", pflag.ContinueOnError)
	flags.StringVarP(&opts.file, "file", "f", "", "arquivo CSV com cabeçalho (Nome, Email, WhatsApp, ...)")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Minute, "tempo máximo da importação")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "lista cada linha rejeitada")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if opts.file == "" {
		return opts, fmt.Errorf("--file é obrigatório")
	}

	return opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel, cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	data, err := os.ReadFile(opts.file)
	if err != nil {
		logrus.WithError(err).Fatalf("ERRO ao ler arquivo %s", opts.file)
	}

	conn, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("ERRO ao conectar ao banco de dados")
	}
	defer conn.Close()

	// Importações invalidam o cache das estatísticas usado pela API
	redisClient := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)
	if redisClient != nil {
		defer redisClient.Close()
	}

	leadService := lead.NewService(
		repository.NewLeadRepository(conn),
		cache.NewStatsCache(redisClient, cfg.Cache.StatsCacheTTL),
		cfg,
	)
	importer := importing.NewService(leadService)

	startTime := time.Now()
	logrus.WithFields(logrus.Fields{
		"file":  opts.file,
		"bytes": len(data),
	}).Info("Iniciando importação de leads")

	result, err := importer.ImportCSV(ctx, string(data))
	if err != nil {
		logrus.WithError(err).Error("Importação interrompida")
		os.Exit(1)
	}

	report(result, opts.verbose, time.Since(startTime))
}

func report(result *domain.ImportResult, verbose bool, elapsed time.Duration) {
	if verbose {
		for _, lineErr := range result.Errors {
			logrus.Warn(lineErr)
		}
	}

	logrus.WithFields(logrus.Fields{
		"imported": result.Imported,
		"failed":   len(result.Errors),
		"elapsed":  elapsed.Round(time.Millisecond).String(),
	}).Info("Importação concluída")
}
