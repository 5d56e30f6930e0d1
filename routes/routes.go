package routes

import (
	"github.com/avelychko/league-roster/handlers"
	"github.com/avelychko/league-roster/middleware"
	"github.com/avelychko/league-roster/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes wires the MVC-style entity routes. Every mutating route sits
// behind the anti-forgery middleware; the Sport group is additionally gated
// to the Admin role.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	sportHandler *handlers.SportHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	statsHandler *handlers.StatsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.CSRFHeaderName},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.AntiForgery)

	authenticate := middleware.Authenticate([]byte(jwtSecret))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/Sport", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRole(models.RoleAdmin))

		r.Get("/", sportHandler.List)
		r.Get("/Details/{sportID}", sportHandler.Details)
		r.Get("/Create", sportHandler.CreateForm)
		r.Post("/Create", sportHandler.Create)
		r.Get("/Edit/{sportID}", sportHandler.EditForm)
		r.Post("/Edit/{sportID}", sportHandler.Edit)
		r.Get("/Delete/{sportID}", sportHandler.DeleteForm)
		r.Post("/Delete/{sportID}", sportHandler.Delete)
		r.Post("/Logo/{sportID}", sportHandler.UploadLogo)
	})

	router.Route("/Team", func(r chi.Router) {
		r.Get("/", teamHandler.List)
		r.Get("/Details/{teamID}", teamHandler.Details)
		r.Get("/Create", teamHandler.CreateForm)
		r.Post("/Create", teamHandler.Create)
		r.Get("/Edit/{teamID}", teamHandler.EditForm)
		r.Post("/Edit/{teamID}", teamHandler.Edit)
		r.Get("/Delete/{teamID}", teamHandler.DeleteForm)
		r.Post("/Delete/{teamID}", teamHandler.Delete)
		r.Post("/Logo/{teamID}", teamHandler.UploadLogo)
	})

	router.Route("/Player", func(r chi.Router) {
		r.Get("/", playerHandler.List)
		r.Get("/Details/{playerID}", playerHandler.Details)
		r.Get("/Create", playerHandler.CreateForm)
		r.Post("/Create", playerHandler.Create)
		r.Get("/Edit/{playerID}", playerHandler.EditForm)
		r.Post("/Edit/{playerID}", playerHandler.Edit)
		r.Get("/Delete/{playerID}", playerHandler.DeleteForm)
		r.Post("/Delete/{playerID}", playerHandler.Delete)
	})

	router.Get("/dashboard", statsHandler.Dashboard)
	router.Get("/ws/roster/{topic}", webSocketHandler.ServeWs)
}
