package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/lead-crm-api/pkg/log"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthcheckHandler responde 200 com o banco acessível e 503 caso contrário
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		response := healthResponse{Status: "ok", Database: "ok", Timestamp: time.Now().UTC()}
		status := http.StatusOK

		if err := db.Ping(ctx); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Healthcheck sem acesso ao banco")
			response.Status = "degraded"
			response.Database = "unavailable"
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, r, status, response)
	})
}
