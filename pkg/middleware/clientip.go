package middleware

import (
	"net/http"

	"github.com/vfg2006/lead-crm-api/pkg/utils"
)

// ClientIPMiddleware resolve o IP de origem uma vez por requisição. Cabeçalhos de
// encaminhamento só são considerados quando a conexão vem de um dos proxies confiáveis.
func ClientIPMiddleware(proxies utils.TrustedProxies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := proxies.Resolve(r)
			next.ServeHTTP(w, r.WithContext(utils.WithClientIP(r.Context(), ip)))
		})
	}
}
