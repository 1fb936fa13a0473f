package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/cs2-arena/docs" // регистрирует swagger doc
	"github.com/Dosada05/cs2-arena/handlers"
	"github.com/Dosada05/cs2-arena/middleware"
)

func SetupRoutes(
	router chi.Router,
	jwtSecret string,
	allowedOrigins []string,
	teamHandler *handlers.TeamHandler,
	groupHandler *handlers.GroupHandler,
	matchHandler *handlers.MatchHandler,
	bracketHandler *handlers.BracketHandler,
	adminHandler *handlers.AdminHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// WebSocket подписки на живые таблицы и сетки
	router.Get("/ws/groups/{group}", webSocketHandler.ServeGroup)
	router.Get("/ws/brackets/{stage}", webSocketHandler.ServeStage)

	admin := func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize(middleware.RoleAdmin))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.ListTeams)
			r.Get("/{teamID}", teamHandler.GetTeamByID)

			r.Group(func(r chi.Router) {
				admin(r)
				r.Post("/", teamHandler.CreateTeam)
				r.Delete("/{teamID}", teamHandler.DeleteTeam)
			})
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groupHandler.ListGroups)
			r.Get("/{group}", groupHandler.GetGroup)
			r.Get("/{group}/standings", matchHandler.GetStandings)
			r.Get("/{group}/matches", matchHandler.ListGroupMatches)
			r.Get("/{group}/schedule", groupHandler.GroupSchedule)
			r.Get("/{group}/swiss-pairings", groupHandler.SwissPairings)

			r.Group(func(r chi.Router) {
				admin(r)
				r.Post("/distribute", groupHandler.DistributeGroups)
			})
		})

		r.Get("/standings", matchHandler.ListAllStandings)

		r.Route("/matches", func(r chi.Router) {
			r.Get("/{matchID}", matchHandler.GetMatch)

			r.Group(func(r chi.Router) {
				admin(r)
				r.Post("/", matchHandler.SubmitMatch)
				r.Put("/{matchID}", matchHandler.EditMatch)
				r.Delete("/{matchID}", matchHandler.DeleteMatch)
			})
		})

		r.Route("/brackets", func(r chi.Router) {
			r.Get("/", bracketHandler.ListStages)
			r.Get("/{stage}", bracketHandler.GetStage)

			r.Group(func(r chi.Router) {
				admin(r)
				r.Post("/", bracketHandler.GenerateStage)
				r.Post("/matches/{matchID}/result", bracketHandler.RecordResult)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			admin(r)
			r.Get("/audit", adminHandler.RunAudit)
		})
	})
}
