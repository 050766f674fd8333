package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/printlabth/printlab-backend/api/controllers"
	"github.com/printlabth/printlab-backend/api/middleware"
	ordersvc "github.com/printlabth/printlab-backend/internal/orders"
	"github.com/printlabth/printlab-backend/internal/pricing"
	productsvc "github.com/printlabth/printlab-backend/internal/products"
	"github.com/printlabth/printlab-backend/pkg/config"
	"github.com/printlabth/printlab-backend/pkg/logger"
)

// Deps carries everything the router wires into handlers. Nil integrations
// (redis, metrics registry) degrade gracefully.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          controllers.Pinger
	PricingEngine  *pricing.Engine
	OrdersService  ordersvc.Service
	ProductService productsvc.Service
	Metrics        prometheus.Gatherer
	UploadDir      string
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(deps.Config.App.ExtraCORSOrigins...),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/quote", controllers.Quote(deps.PricingEngine, deps.Logger))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.SubmitOrder(deps.OrdersService, deps.Logger))
			r.Get("/", controllers.ListOrders(deps.OrdersService, deps.Logger))
			r.Get("/{id}", controllers.GetOrder(deps.OrdersService, deps.Logger))
			r.Patch("/{id}", controllers.UpdateOrder(deps.OrdersService, deps.Logger))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.ProductService, deps.Logger))
			r.Get("/{slug}", controllers.GetProduct(deps.ProductService, deps.Logger))
		})
	})

	if deps.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}
