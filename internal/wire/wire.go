package wire

import (
	"net/http"

	"rental-booking/internal/adaptor"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/middleware"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired HTTP router
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers and mounts their routes
func Wiring(repo *repository.Repository, api usecase.RentalAPI, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, api, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware, request id first so every log line carries it
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireReservation(r, handler.Reservation)
	wireWizard(r, handler.Wizard)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
