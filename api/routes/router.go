package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velureshop/velure-backend/api/controllers"
	"github.com/velureshop/velure-backend/api/middleware"
	"github.com/velureshop/velure-backend/internal/catalog"
	"github.com/velureshop/velure-backend/internal/orders"
	"github.com/velureshop/velure-backend/pkg/config"
	"github.com/velureshop/velure-backend/pkg/logger"
	"github.com/velureshop/velure-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	catalogService catalog.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	intakePolicy := middleware.NewIntakeRateLimitPolicy(
		"intake",
		cfg.Intake.RateLimitWindow,
		cfg.Intake.RateLimitIPLimit,
		cfg.Intake.RateLimitPhoneLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.With(middleware.IntakeRateLimit(intakePolicy, redisClient, logg)).
			Post("/", controllers.CreateOrder(ordersService, logg))
		r.Get("/", controllers.ListOrders(ordersService, logg))
		r.Route("/{displayId}", func(r chi.Router) {
			r.Get("/", controllers.GetOrder(ordersService, logg))
			r.Patch("/status", controllers.UpdateOrderStatus(ordersService, logg))
			r.Delete("/", controllers.DeleteOrder(ordersService, logg))
		})
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(catalogService, logg))
		r.Post("/", controllers.CreateProduct(catalogService, logg))
		r.Route("/{productId}", func(r chi.Router) {
			r.Get("/", controllers.GetProduct(catalogService, logg))
			r.Patch("/", controllers.UpdateProduct(catalogService, logg))
			r.Delete("/", controllers.DeleteProduct(catalogService, logg))
		})
	})

	return r
}
