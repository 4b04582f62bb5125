package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/lead-crm-api/internal/domain"
	"github.com/vfg2006/lead-crm-api/internal/usecases/seller"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
)

func ListSellers(service seller.SellerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		onlyActive := strings.EqualFold(r.URL.Query().Get("active"), "true")

		sellers, err := service.ListSellers(r.Context(), onlyActive)
		if err != nil {
			apiErrors.WriteFromError(w, err, "Erro ao listar vendedores")
			return
		}

		if sellers == nil {
			sellers = []*domain.Seller{}
		}

		writeJSON(w, r, http.StatusOK, sellers)
	}
}

func GetSeller(service seller.SellerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		result, err := service.GetSeller(r.Context(), id)
		if err != nil {
			apiErrors.WriteFromError(w, err, "Erro ao buscar vendedor")
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}

func CreateSeller(service seller.SellerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateSellerRequest
		if !decodeBody(w, r, &req) {
			return
		}

		created, err := service.CreateSeller(r.Context(), req)
		if err != nil {
			apiErrors.WriteFromError(w, err, "Erro ao criar vendedor")
			return
		}

		writeJSON(w, r, http.StatusCreated, created)
	}
}

func UpdateSeller(service seller.SellerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req domain.UpdateSellerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = id

		updated, err := service.UpdateSeller(r.Context(), req)
		if err != nil {
			apiErrors.WriteFromError(w, err, "Erro ao atualizar vendedor")
			return
		}

		writeJSON(w, r, http.StatusOK, updated)
	}
}

// DeleteSeller devolve o registro removido
func DeleteSeller(service seller.SellerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		deleted, err := service.DeleteSeller(r.Context(), id)
		if err != nil {
			apiErrors.WriteFromError(w, err, "Erro ao remover vendedor")
			return
		}

		writeJSON(w, r, http.StatusOK, deleted)
	}
}
