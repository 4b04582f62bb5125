package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/lead-crm-api/internal/domain"
	"github.com/vfg2006/lead-crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
	"github.com/vfg2006/lead-crm-api/pkg/log"
	"github.com/vfg2006/lead-crm-api/pkg/middleware"
)

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		token, err := service.Login(req.Password)
		if err != nil {
			if errors.Is(err, authenticating.ErrInvalidCredentials) {
				middleware.RecordLoginAttempt("invalid")
				log.ForContext(r.Context()).Warn("Tentativa de login com senha incorreta")
			}
			apiErrors.WriteFromError(w, err, "Erro interno ao realizar login")
			return
		}

		middleware.RecordLoginAttempt("success")
		writeJSON(w, r, http.StatusOK, domain.LoginResponse{Token: token})
	}
}

// Verify só é alcançado com token válido, o AuthMiddleware já rejeitou os demais
func Verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok || !claims.Authenticated {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido", nil)
			return
		}

		response := map[string]any{"valid": true}
		if claims.ExpiresAt != nil {
			response["expiresAt"] = claims.ExpiresAt.Time
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}
