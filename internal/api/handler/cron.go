package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
)

const CronJobTypeStats = "stats"

// StatsWarmer é implementado por scheduler.StatsWarmupService
type StatsWarmer interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(warmer StatsWarmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		switch cronType {
		case CronJobTypeStats:
			started := warmer.TriggerManualSync(r.Context())

			message := "Cron job iniciada com sucesso"
			if !started {
				message = "Cron job já está em execução"
			}

			writeJSON(w, r, http.StatusAccepted, map[string]any{
				"message": message,
				"type":    cronType,
				"started": started,
			})
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: stats", nil)
		}
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(warmer StatsWarmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]any{
			CronJobTypeStats: warmer.GetStatus(),
		})
	}
}
