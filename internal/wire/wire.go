// internal/wire/wire.go
package wire

import (
	"net/http"

	"venue-booking/internal/adaptor"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/cache"
	"venue-booking/pkg/middleware"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/ulule/limiter/v3"
	"go.uber.org/zap"
)

// Infra holds the optional outside services. Nil members fall back to in-process defaults.
type Infra struct {
	Cache          cache.Cache
	Notifier       usecase.BookingNotifier
	RateLimitStore limiter.Store
}

// App holds the wired router and services
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, infra Infra, logger *zap.Logger) (*App, error) {
	if infra.RateLimitStore == nil {
		store, err := middleware.NewRateLimitStore(nil, config.App.Name)
		if err != nil {
			return nil, err
		}
		infra.RateLimitStore = store
	}

	service := usecase.NewService(repo, config, infra.Cache, infra.Notifier, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router, err := setupRouter(handler, config, infra, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Router:  router,
		Service: service,
	}, nil
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	infra Infra,
	logger *zap.Logger,
) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	auth := middleware.AuthBearer(utils.NewTokenVerifier(config.JWT), logger)
	admin := middleware.AdminSession(logger)

	bookingLimit, err := middleware.RateLimit(infra.RateLimitStore, config.RateLimit.Booking, "booking", logger)
	if err != nil {
		return nil, err
	}
	loginLimit, err := middleware.RateLimit(infra.RateLimitStore, config.RateLimit.Login, "admin_login", logger)
	if err != nil {
		return nil, err
	}

	// Apply routes
	wireVenue(r, handler.Venue, handler.Booking, admin)
	wireBooking(r, handler.Booking, auth, admin, bookingLimit)
	wireEvent(r, handler.Event)
	wireAdmin(r, handler.Admin, loginLimit)
	wireUser(r, handler.User, auth)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})

	return r, nil
}
