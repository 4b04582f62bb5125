// Package scheduler contém os serviços agendados da API
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-crm-api/internal/config"
	"github.com/vfg2006/lead-crm-api/internal/usecases/lead"
)

const warmupTimeout = 2 * time.Minute

type StatsWarmupConfig struct {
	CronSchedule string
	Enabled      bool
}

// StatsWarmupService recalcula periodicamente as estatísticas de leads e grava no cache,
// assim a primeira leitura depois de uma invalidação não paga o custo das agregações.
type StatsWarmupService struct {
	scheduler           *gocron.Scheduler
	leadService         lead.LeadService
	config              StatsWarmupConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewStatsWarmupService(leadService lead.LeadService, cfg *config.Config) *StatsWarmupService {
	warmupConfig := StatsWarmupConfig{
		CronSchedule: cfg.StatsWarmup.CronSchedule, // Default: a cada 10 minutos
		// Sem Redis não há onde guardar o resultado
		Enabled: cfg.StatsWarmup.Enabled && cfg.Cache.RedisURL != "",
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": warmupConfig.CronSchedule,
		"enabled":       warmupConfig.Enabled,
	}).Info("Configuração do aquecimento de estatísticas carregada")

	return &StatsWarmupService{
		scheduler:   gocron.NewScheduler(time.UTC),
		leadService: leadService,
		config:      warmupConfig,
	}
}

func (s *StatsWarmupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de aquecimento de estatísticas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de aquecimento de estatísticas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.WarmUp(ctx); err != nil {
			logrus.WithError(err).Error("Erro no aquecimento de estatísticas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar aquecimento de estatísticas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de aquecimento de estatísticas")
		s.scheduler.Stop()
	}()

	return nil
}

// WarmUp recalcula as estatísticas; execuções sobrepostas são ignoradas
func (s *StatsWarmupService) WarmUp(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Aquecimento de estatísticas já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	ctx, cancel := context.WithTimeout(ctx, warmupTimeout)
	defer cancel()

	stats, err := s.leadService.RefreshStatistics(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
	s.syncMutex.Unlock()

	if err != nil {
		return err
	}

	logrus.WithField("total", stats.Total).Info("Estatísticas de leads recalculadas")

	return nil
}

// TriggerManualSync dispara um aquecimento fora do agendamento
func (s *StatsWarmupService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Aquecimento de estatísticas já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando aquecimento manual de estatísticas")
	go func() {
		if err := s.WarmUp(context.WithoutCancel(ctx)); err != nil {
			logrus.WithError(err).Error("Erro no aquecimento manual de estatísticas")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *StatsWarmupService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
