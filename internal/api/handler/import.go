package handler

import (
	"net/http"

	"github.com/vfg2006/lead-crm-api/internal/domain"
	"github.com/vfg2006/lead-crm-api/internal/usecases/importing"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
	"github.com/vfg2006/lead-crm-api/pkg/middleware"
)

// ImportLeads recebe o CSV no campo csvData. Falhas por linha não mudam o status da resposta.
func ImportLeads(service importing.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.ImportLeadsRequest
		if !decodeBody(w, r, &req) {
			return
		}

		result, err := service.ImportCSV(r.Context(), req.CSVData)
		if err != nil {
			apiErrors.WriteFromError(w, err, "Erro ao importar leads")
			return
		}

		middleware.RecordImport(result.Imported, len(result.Errors))
		writeJSON(w, r, http.StatusOK, result)
	}
}
