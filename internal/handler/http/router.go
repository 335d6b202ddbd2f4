package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/handler/http/middleware"
)

func NewRouter(
	tokenAuth *jwtauth.JWTAuth,
	workerHandler WorkerHandler,
	availabilityHandler AvailabilityHandler,
	timeOffHandler TimeOffHandler,
	rosterHandler RosterHandler,
	staffingHandler StaffingHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "rostering-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(tokenAuth))
		r.Use(middleware.AuthRequired(tokenAuth))

		r.Route("/workers", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(worker.RoleManager, worker.RoleHR))
				r.Post("/", workerHandler.Create)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(worker.RoleManager, worker.RoleScheduler, worker.RoleHR))
				r.Get("/", workerHandler.List)
			})

			r.Route("/{workerID}", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSelfOrRole(worker.RoleManager, worker.RoleScheduler, worker.RoleHR))
					r.Get("/", workerHandler.Get)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(worker.RoleHR))
					r.Put("/", workerHandler.Update)
					r.Delete("/", workerHandler.Deactivate)
				})

				r.Route("/availability", func(r chi.Router) {
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireSelfOrRole(worker.RoleManager, worker.RoleHR))
						r.Post("/", availabilityHandler.CreateProfile)
						r.Get("/history", availabilityHandler.GetProfileHistory)
					})
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireSelfOrRole(worker.RoleManager, worker.RoleScheduler, worker.RoleHR))
						r.Get("/", availabilityHandler.GetProfile)
					})

					r.Route("/overrides", func(r chi.Router) {
						r.Group(func(r chi.Router) {
							r.Use(middleware.RequireRole(worker.RoleManager, worker.RoleScheduler))
							r.Post("/", availabilityHandler.CreateOverride)
						})
						r.Group(func(r chi.Router) {
							r.Use(middleware.RequireSelfOrRole(worker.RoleManager, worker.RoleScheduler, worker.RoleHR))
							r.Get("/", availabilityHandler.ListOverrides)
						})
					})
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSelfOrRole(worker.RoleManager, worker.RoleHR))
					r.Get("/time-off", timeOffHandler.ListForWorker)
				})
			})
		})

		r.Route("/availability", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(worker.RoleManager, worker.RoleScheduler, worker.RoleHR))
				r.Post("/bulk", availabilityHandler.BulkAvailability)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(worker.RoleManager, worker.RoleScheduler))
				r.Delete("/overrides/{overrideID}", availabilityHandler.ExpireOverride)
			})
		})

		r.Route("/time-off", func(r chi.Router) {
			r.Post("/", timeOffHandler.Submit)
			r.Get("/{requestID}", timeOffHandler.Get)
			r.Post("/{requestID}/cancel", timeOffHandler.Cancel)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(worker.RoleManager, worker.RoleHR))
				r.Post("/{requestID}/approve", timeOffHandler.Approve)
				r.Post("/{requestID}/reject", timeOffHandler.Reject)
			})
		})

		r.Route("/templates", func(r chi.Router) {
			r.Use(middleware.RequireRole(worker.RoleManager, worker.RoleScheduler))
			r.Post("/", rosterHandler.CreateTemplate)
			r.Get("/", rosterHandler.ListTemplates)
			r.Get("/{templateID}", rosterHandler.GetTemplate)
			r.Delete("/{templateID}", rosterHandler.DeactivateTemplate)
		})

		r.Route("/rosters", func(r chi.Router) {
			r.Get("/", rosterHandler.List)
			r.Get("/{rosterID}", rosterHandler.Get)
			r.Get("/{rosterID}/conflicts", rosterHandler.Conflicts)
			r.Get("/{rosterID}/swaps", rosterHandler.ListSwaps)
			r.Post("/{rosterID}/swaps", rosterHandler.SubmitSwap)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(worker.RoleManager, worker.RoleScheduler))
				r.Post("/", rosterHandler.Create)
				r.Post("/{rosterID}/generate", rosterHandler.Generate)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(worker.RoleManager))
				r.Post("/{rosterID}/approve", rosterHandler.Approve)
				r.Post("/{rosterID}/publish", rosterHandler.Publish)
			})
		})

		r.Route("/swaps", func(r chi.Router) {
			r.Use(middleware.RequireRole(worker.RoleManager, worker.RoleScheduler))
			r.Post("/{swapID}/approve", rosterHandler.ApproveSwap)
			r.Post("/{swapID}/reject", rosterHandler.RejectSwap)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(worker.RoleManager, worker.RoleScheduler))
			r.Post("/staffing/search", staffingHandler.Search)
		})
	})

	return r
}
