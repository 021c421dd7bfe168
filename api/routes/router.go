package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ravetagbd/ravetag-backend/api/controllers"
	"github.com/ravetagbd/ravetag-backend/api/middleware"
	"github.com/ravetagbd/ravetag-backend/internal/catalog"
	"github.com/ravetagbd/ravetag-backend/internal/customers"
	"github.com/ravetagbd/ravetag-backend/internal/linkvisits"
	"github.com/ravetagbd/ravetag-backend/internal/orders"
	"github.com/ravetagbd/ravetag-backend/internal/otp"
	"github.com/ravetagbd/ravetag-backend/pkg/auth"
	"github.com/ravetagbd/ravetag-backend/pkg/config"
	"github.com/ravetagbd/ravetag-backend/pkg/logger"
	"github.com/ravetagbd/ravetag-backend/pkg/metrics"
	"github.com/ravetagbd/ravetag-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	authenticator auth.AdminAuthenticator,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	catalogService catalog.Service,
	ordersService orders.Service,
	customersService customers.Service,
	otpService otp.Service,
	linkVisitsService linkvisits.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	sendPolicy := middleware.NewOTPRateLimitPolicy(
		"otp-send",
		cfg.OTPRateLimit.SendWindow,
		cfg.OTPRateLimit.SendIPLimit,
		cfg.OTPRateLimit.SendPhoneLimit,
	)
	verifyPolicy := middleware.NewOTPRateLimitPolicy(
		"otp-verify",
		cfg.OTPRateLimit.VerifyWindow,
		cfg.OTPRateLimit.VerifyIPLimit,
		cfg.OTPRateLimit.VerifyPhoneLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisPinger(redisClient), logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if redisClient != nil {
			r.Use(middleware.Idempotency(redisClient, logg))
		}

		// Storefront surface.
		r.Get("/products", controllers.ListProducts(catalogService, logg))
		r.Get("/product-price", controllers.GetProductPrice(catalogService, logg))
		r.Get("/categories", controllers.ListCategories(catalogService, logg))
		r.Post("/place-order", controllers.PlaceOrder(ordersService, logg))
		r.Post("/cancel-order", controllers.CancelOrder(ordersService, logg))
		r.Get("/orders", controllers.ListOrders(ordersService, logg))
		r.Post("/customer", controllers.UpsertCustomer(customersService, logg))
		r.Put("/external-link-visit", controllers.RecordLinkVisit(linkVisitsService, logg))

		r.With(middleware.OTPRateLimit(sendPolicy, rateStore(redisClient), logg)).
			Get("/otp", controllers.SendOTP(otpService, logg))
		r.With(middleware.OTPRateLimit(verifyPolicy, rateStore(redisClient), logg)).
			Get("/verify-phone", controllers.VerifyPhone(otpService, logg))

		// Admin surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(authenticator, logg))

			r.Post("/products", controllers.CreateProduct(catalogService, logg))
			r.Put("/products", controllers.ReplaceProduct(catalogService, logg))
			r.Delete("/products", controllers.DeleteProduct(catalogService, logg))
			r.Put("/change-order-status", controllers.ChangeOrderStatus(ordersService, logg))
			r.Get("/admin-orders", controllers.AdminListOrders(ordersService, logg))
		})
	})

	return r
}

func redisPinger(client *redis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func rateStore(client *redis.Client) middleware.RateLimiterStore {
	if client == nil {
		return nil
	}
	return client
}
