package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/lead-crm-api/internal/api/handler/router"
	"github.com/vfg2006/lead-crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/lead-crm-api/internal/usecases/exporting"
	"github.com/vfg2006/lead-crm-api/internal/usecases/importing"
	"github.com/vfg2006/lead-crm-api/internal/usecases/lead"
	"github.com/vfg2006/lead-crm-api/internal/usecases/seller"
	"github.com/vfg2006/lead-crm-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/health",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator, limiter *middleware.RateLimiter) []router.Route {
	return []router.Route{
		{
			Path:        "/api/auth/login",
			Method:      http.MethodPost,
			Handler:     Login(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.RateLimitMiddleware(limiter)},
		},
		{
			Path:    "/api/auth/verify",
			Method:  http.MethodPost,
			Handler: Verify(),
		},
	}
}

// Leads registra as rotas de leads. Estatísticas, exportação e importação ficam em
// prefixos próprios porque o httprouter não mistura segmento fixo com :id.
func Leads(service lead.LeadService) []router.Route {
	return []router.Route{
		{
			Path:    "/api/leads",
			Method:  http.MethodGet,
			Handler: ListLeads(service),
		},
		{
			Path:    "/api/leads",
			Method:  http.MethodPost,
			Handler: CreateLead(service),
		},
		{
			Path:    "/api/leads/:id",
			Method:  http.MethodGet,
			Handler: GetLead(service),
		},
		{
			Path:    "/api/leads/:id",
			Method:  http.MethodPut,
			Handler: UpdateLead(service),
		},
		{
			Path:    "/api/leads/:id/status",
			Method:  http.MethodPatch,
			Handler: UpdateLeadStatus(service),
		},
		{
			Path:    "/api/stats/leads",
			Method:  http.MethodGet,
			Handler: GetLeadStatistics(service),
		},
	}
}

func Export(service exporting.Exporter) []router.Route {
	return []router.Route{
		{
			Path:    "/api/export/leads/:format",
			Method:  http.MethodGet,
			Handler: ExportLeads(service),
		},
	}
}

func Import(service importing.Importer) []router.Route {
	return []router.Route{
		{
			Path:    "/api/import/leads",
			Method:  http.MethodPost,
			Handler: ImportLeads(service),
		},
	}
}

func Sellers(service seller.SellerService) []router.Route {
	return []router.Route{
		{
			Path:    "/api/sellers",
			Method:  http.MethodGet,
			Handler: ListSellers(service),
		},
		{
			Path:    "/api/sellers",
			Method:  http.MethodPost,
			Handler: CreateSeller(service),
		},
		{
			Path:    "/api/sellers/:id",
			Method:  http.MethodGet,
			Handler: GetSeller(service),
		},
		{
			Path:    "/api/sellers/:id",
			Method:  http.MethodPut,
			Handler: UpdateSeller(service),
		},
		{
			Path:    "/api/sellers/:id",
			Method:  http.MethodDelete,
			Handler: DeleteSeller(service),
		},
	}
}

func CronJobs(warmer StatsWarmer) []router.Route {
	return []router.Route{
		{
			Path:    "/api/cron/run/:type",
			Method:  http.MethodPost,
			Handler: RunCronJob(warmer),
		},
		{
			Path:    "/api/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(warmer),
		},
	}
}
