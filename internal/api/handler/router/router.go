package router

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
)

var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.AddRoutes(routes...)
		}
	}
)

type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler // Lista de middlewares específicos para esta rota
}

type Router struct {
	router   *httprouter.Router
	patterns map[string][]string // padrões registrados por método
}

type ConfigRouter func(router *Router)

// New cria o roteador; rotas e métodos desconhecidos respondem no formato padrão de erro
func New(configs ...ConfigRouter) Router {
	router := &Router{
		router:   httprouter.New(),
		patterns: make(map[string][]string),
	}

	router.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Rota não encontrada", nil)
	})
	router.router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "Método não permitido", nil)
	})
	// Preflight de CORS é respondido pelo middleware antes de chegar aqui
	router.router.HandleOPTIONS = false

	for _, config := range configs {
		config(router)
	}

	return *router
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes adiciona rotas ao router com seus middlewares específicos
func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		var handler http.Handler = route.Handler

		// Aplicar middlewares específicos da rota, do último para o primeiro
		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			middleware := route.Middlewares[i]
			handler = middleware(handler)
		}

		r.router.Handler(route.Method, route.Path, handler)
		r.patterns[route.Method] = append(r.patterns[route.Method], route.Path)
	}
}

// RoutePattern devolve o padrão registrado que atende a requisição, como
// /api/leads/:id, ou vazio quando nenhuma rota casa com método e caminho
func (r Router) RoutePattern(req *http.Request) string {
	for _, pattern := range r.patterns[req.Method] {
		if matchPattern(pattern, req.URL.Path) {
			return pattern
		}
	}
	return ""
}

func matchPattern(pattern, path string) bool {
	patternSegments := strings.Split(pattern, "/")
	pathSegments := strings.Split(path, "/")

	for i, segment := range patternSegments {
		if strings.HasPrefix(segment, "*") {
			return i < len(pathSegments)
		}
		if i >= len(pathSegments) {
			return false
		}
		if strings.HasPrefix(segment, ":") {
			if pathSegments[i] == "" {
				return false
			}
			continue
		}
		if segment != pathSegments[i] {
			return false
		}
	}

	return len(patternSegments) == len(pathSegments)
}
