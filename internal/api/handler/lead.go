package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vfg2006/lead-crm-api/internal/domain"
	"github.com/vfg2006/lead-crm-api/internal/usecases/lead"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
	"github.com/vfg2006/lead-crm-api/pkg/middleware"
	"github.com/vfg2006/lead-crm-api/pkg/utils"
)

// parseLeadFilter lê os filtros da query string. Paginação não numérica ou negativa
// é rejeitada aqui; zero fica para o caso de uso aplicar o padrão.
func parseLeadFilter(query url.Values, withPagination bool) (domain.LeadFilter, string) {
	filter := domain.LeadFilter{
		Search:      strings.TrimSpace(query.Get("search")),
		Profession:  query.Get("profession"),
		Difficulty:  query.Get("difficulty"),
		Region:      query.Get("region"),
		UTMCampaign: query.Get("utm_campaign"),
		SellerID:    strings.TrimSpace(query.Get("seller_id")),
		IsCustomer:  strings.TrimSpace(query.Get("is_customer")),
		Status:      query.Get("status"),
		DateFrom:    strings.TrimSpace(query.Get("dateFrom")),
		DateTo:      strings.TrimSpace(query.Get("dateTo")),
	}

	if !withPagination {
		return filter, ""
	}

	var problem string
	filter.Page, problem = parsePaginationParam(query, "page")
	if problem != "" {
		return filter, problem
	}
	filter.Limit, problem = parsePaginationParam(query, "limit")

	return filter, problem
}

func parsePaginationParam(query url.Values, name string) (int, string) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return 0, ""
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, name + " deve ser um inteiro não negativo"
	}

	return value, ""
}

func ListLeads(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, problem := parseLeadFilter(r.URL.Query(), true)
		if problem != "" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, problem, nil)
			return
		}

		result, err := service.ListLeads(r.Context(), filter)
		if err != nil {
			apiErrors.WriteFromError(w, err, "Erro ao listar leads")
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

func GetLead(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		result, err := service.GetLead(r.Context(), id)
		if err != nil {
			apiErrors.WriteFromError(w, err, "Erro ao buscar lead")
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

func CreateLead(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateLeadRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if req.UserAgent == nil || strings.TrimSpace(*req.UserAgent) == "" {
			if userAgent := r.UserAgent(); userAgent != "" {
				req.UserAgent = &userAgent
			}
		}
		clientIP := utils.ClientIP(r)
		req.ConsentIP = &clientIP

		created, err := service.CreateLead(r.Context(), req)
		if err != nil {
			apiErrors.WriteFromError(w, err, "Erro ao criar lead")
			return
		}

		middleware.RecordLeadCreated()
		writeJSON(w, r, http.StatusCreated, created)
	}
}

func UpdateLead(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req domain.UpdateLeadRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = id

		updated, err := service.UpdateLead(r.Context(), req)
		if err != nil {
			apiErrors.WriteFromError(w, err, "Erro ao atualizar lead")
			return
		}

		writeJSON(w, r, http.StatusOK, updated)
	}
}

func UpdateLeadStatus(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req domain.UpdateLeadStatusRequest
		if !decodeBody(w, r, &req) {
			return
		}

		updated, err := service.UpdateLeadStatus(r.Context(), id, strings.TrimSpace(req.Status))
		if err != nil {
			apiErrors.WriteFromError(w, err, "Erro ao atualizar status do lead")
			return
		}

		writeJSON(w, r, http.StatusOK, updated)
	}
}

func GetLeadStatistics(service lead.LeadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.GetStatistics(r.Context())
		if err != nil {
			apiErrors.WriteFromError(w, err, "Erro ao calcular estatísticas")
			return
		}

		writeJSON(w, r, http.StatusOK, stats)
	}
}
