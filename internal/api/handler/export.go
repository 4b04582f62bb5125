package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/lead-crm-api/internal/usecases/exporting"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
	"github.com/vfg2006/lead-crm-api/pkg/middleware"
)

const (
	utf8BOM      = "\ufeff"
	xlsxMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportLeads gera o arquivo com todos os leads do filtro, sem paginação
func ExportLeads(service exporting.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := httprouter.ParamsFromContext(r.Context()).ByName("format")
		filter, _ := parseLeadFilter(r.URL.Query(), false)
		filename := fmt.Sprintf("leads-%d.%s", time.Now().UnixMilli(), format)

		switch format {
		case exporting.FormatCSV:
			content, err := service.ExportCSV(r.Context(), filter)
			if err != nil {
				apiErrors.WriteFromError(w, err, "Erro ao exportar leads")
				return
			}

			middleware.RecordExport(format)
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", "attachment; filename="+filename)
			w.WriteHeader(http.StatusOK)
			// BOM para o Excel reconhecer UTF-8
			_, _ = w.Write([]byte(utf8BOM + content))

		case exporting.FormatXLSX:
			content, err := service.ExportXLSX(r.Context(), filter)
			if err != nil {
				apiErrors.WriteFromError(w, err, "Erro ao exportar leads")
				return
			}

			if len(content) == 0 {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			middleware.RecordExport(format)
			w.Header().Set("Content-Type", xlsxMimeType)
			w.Header().Set("Content-Disposition", "attachment; filename="+filename)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(content)

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de exportação inválido. Valores aceitos: csv, xlsx", nil)
		}
	}
}
