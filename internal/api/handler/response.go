package handler

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
	"github.com/vfg2006/lead-crm-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Limite do corpo das requisições; importações de CSV são as maiores
const maxBodyBytes = 10 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// decodeBody decodifica o JSON do corpo; em caso de erro já responde VAL_001
func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Erro ao ler corpo da requisição")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido ou muito grande", nil)
		return false
	}

	if len(bytes.TrimSpace(data)) == 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição vazio", nil)
		return false
	}

	if err := json.Unmarshal(data, target); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Erro ao decodificar requisição")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}
	return true
}

// pathID lê o parâmetro :id da rota; em caso de erro já responde VAL_003
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID inválido", nil)
		return 0, false
	}
	return id, true
}
