package providers

import (
	"aurora/internal/structures"
	"net/http"
)

const methodNotAllowedBody = `{"ok":false,"error":"method_not_allowed"}`

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
	Paths() map[string]struct{}
}

// RouterProvider collects single-method routes. Each path serves exactly one
// method; anything else gets a JSON 405 with an Allow header.
type RouterProvider struct {
	routes []structures.Route
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.handle(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.handle(http.MethodPost, url, handler)
}

func (rp *RouterProvider) handle(method, url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Method:  method,
		Url:     url,
		Handler: allowOnly(method, handler),
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

// Paths is the set of registered URLs, used to bound metric labels.
func (rp *RouterProvider) Paths() map[string]struct{} {
	paths := make(map[string]struct{}, len(rp.routes))
	for _, r := range rp.routes {
		paths[r.Url] = struct{}{}
	}
	return paths
}

func allowOnly(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == method {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(methodNotAllowedBody))
	})
}
