package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	"github.com/rs/cors"
	"github.com/unrolled/secure"

	"hat-costing/http-server/calculation"
	getchannels "hat-costing/http-server/channels/get"
	getform "hat-costing/http-server/form/get"
	upform "hat-costing/http-server/form/update"
	generate_excel "hat-costing/http-server/generate-report/generate-excel"
	"hat-costing/http-server/login"
	getmaterials "hat-costing/http-server/materials/get"
	upmaterials "hat-costing/http-server/materials/update"
	clearscraps "hat-costing/http-server/scraps/clear"
	getscraps "hat-costing/http-server/scraps/get"
	savescraps "hat-costing/http-server/scraps/save"
	"hat-costing/internal/config"
	"hat-costing/internal/middleware/auth"
	"hat-costing/internal/service"
	"hat-costing/internal/session"
)

func routes(cfg config.Config, log *slog.Logger, sessions *session.Manager, authz *auth.Authorizer, costService *service.CostService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins, // фронтенд
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      !cfg.IsProduction(),
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	//ip пользователя
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(secureMiddleware.Handler)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	// один счётчик на IP: и вход, и попытки Basic-авторизации
	passwordAttempts := httprate.NewRateLimiter(cfg.LoginRateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))

	router.Route("/api", func(api chi.Router) {
		api.Use(sessions.Middleware)

		// вход по общему паролю
		api.With(passwordAttempts.Handler).Post("/login", login.Login(log, authz))
		api.Post("/logout", login.Logout(log))

		api.Group(func(r chi.Router) {
			r.Use(auth.RequireAccess(authz, passwordAttempts))

			r.Get("/channels", getchannels.GetChannels())

			// Материалы (BOM)
			r.Get("/materials", getmaterials.GetMaterials(log))
			r.Put("/materials", upmaterials.UpdateMaterials(log, costService))
			r.Post("/materials/reset", upmaterials.ResetMaterials(log, costService))

			// Форма: товар, работы, цена, канал
			r.Get("/form", getform.GetForm(log))
			r.Put("/form", upform.UpdateForm(log, costService))

			r.Get("/calculation", calculation.GetCalculation(log, costService))
			r.Post("/calculation", calculation.CalculateCost(log, costService))

			// Скрап-лист
			r.Get("/scraps", getscraps.GetScraps(log, costService))
			r.Post("/scraps", savescraps.SaveScrap(log, costService))
			r.Delete("/scraps", clearscraps.ClearScraps(log, costService))

			r.Get("/report/excel", generate_excel.GenerateReportExcel(log, costService))
		})
	})

	return router
}
