package internal

import (
	"aurora/internal/controllers"
	"aurora/internal/models"
	"aurora/internal/providers"
	"aurora/internal/services"
	"aurora/internal/structures"
	"github.com/go-chi/httprate"
	"net/http"
)

func loginThrottle(conf *structures.Config) func(http.Handler) http.Handler {
	if conf.Auth.LoginRequests <= 0 || conf.Auth.LoginWindow <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		conf.Auth.LoginRequests,
		conf.Auth.LoginWindow,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return services.ClientKey(r), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"ok":false,"error":"rate_limited"}`))
		}),
	)
}

func InitRoutes(
	alertController *controllers.AlertController,
	authController *controllers.AuthController,
	panelController *controllers.PanelController,
	trustedController *controllers.TrustedController,
	backendController *controllers.BackendController,
	gate *services.RoleGate,
	conf *structures.Config,
) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	admin := controllers.RequireRole(gate, models.RoleAdmin)
	trusted := controllers.RequireRole(gate, models.RoleTrusted)
	viewer := controllers.RequireRole(gate, models.RoleAdmin, models.RoleTrusted)
	throttle := loginThrottle(conf)

	routers.Post("/api/send_alert", http.HandlerFunc(alertController.SendAlert))
	routers.Get("/api/last_alert", viewer(http.HandlerFunc(alertController.LastAlert)))
	routers.Get("/api/recent_alerts", viewer(http.HandlerFunc(alertController.RecentAlerts)))
	routers.Get("/api/trusted", http.HandlerFunc(alertController.TrustedNames))

	routers.Post("/api/login", throttle(http.HandlerFunc(authController.Login)))
	routers.Post("/panel/login", throttle(authController.LoginAs(models.RoleAdmin)))
	routers.Post("/trusted/login", throttle(authController.LoginAs(models.RoleTrusted)))
	routers.Post("/logout", http.HandlerFunc(authController.Logout))

	routers.Get("/panel", admin(http.HandlerFunc(panelController.Panel)))
	routers.Post("/panel/add_trusted", admin(http.HandlerFunc(panelController.AddTrusted)))
	routers.Post("/panel/delete_trusted", admin(http.HandlerFunc(panelController.DeleteTrusted)))
	routers.Post("/panel/password", admin(http.HandlerFunc(panelController.ChangePassword)))
	routers.Get("/panel/backends", admin(http.HandlerFunc(panelController.Backends)))

	routers.Get("/trusted", trusted(http.HandlerFunc(trustedController.Home)))

	routers.Get("/api/backend", http.HandlerFunc(backendController.Active))
	routers.Post("/api/report_failure", http.HandlerFunc(backendController.ReportFailure))
	return routers
}
