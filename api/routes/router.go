package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rajchaudar/HR-Dep/api/controllers"
	"github.com/rajchaudar/HR-Dep/api/middleware"
	authsvc "github.com/rajchaudar/HR-Dep/internal/auth"
	cartsvc "github.com/rajchaudar/HR-Dep/internal/cart"
	checkoutsvc "github.com/rajchaudar/HR-Dep/internal/checkout"
	ordersvc "github.com/rajchaudar/HR-Dep/internal/orders"
	productsvc "github.com/rajchaudar/HR-Dep/internal/products"
	"github.com/rajchaudar/HR-Dep/pkg/config"
	"github.com/rajchaudar/HR-Dep/pkg/logger"
	"github.com/rajchaudar/HR-Dep/pkg/metrics"
	"github.com/rajchaudar/HR-Dep/pkg/redis"
)

// NewRouter assembles the HTTP surface: public storefront and auth routes,
// token-guarded cart/order/checkout routes, health probes, and metrics.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database controllers.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	authService authsvc.Service,
	productService productsvc.Service,
	cartService cartsvc.Service,
	orderService ordersvc.Service,
	checkoutService checkoutsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	// Rate limiting needs a counter store; without Redis the endpoints stay open.
	limiter := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if redisClient == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, database, logg))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.With(limiter(registerPolicy)).Post("/register", controllers.AuthRegister(authService, logg))
		r.With(limiter(loginPolicy)).Post("/login", controllers.AuthLogin(authService, logg))

		r.Route("/auth/google", func(r chi.Router) {
			r.Get("/", controllers.AuthGoogleRedirect(authService, logg))
			r.Get("/callback", controllers.AuthGoogleCallback(authService, cfg.App, logg))
			r.Post("/token", controllers.AuthGoogleToken(authService, logg))
		})

		r.With(limiter(loginPolicy)).Post("/request-set-password", controllers.AuthRequestSetPassword(authService, logg))
		r.Post("/reset-password", controllers.AuthResetPassword(authService, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(productService, logg))
			r.Get("/marketed", controllers.ProductListMarketed(productService, logg))
			r.Get("/store", controllers.ProductListStore(productService, logg))
			r.Get("/{productID}", controllers.ProductGet(productService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Post("/", controllers.ProductCreate(productService, logg))
				r.Put("/{productID}", controllers.ProductUpdate(productService, logg))
				r.Delete("/{productID}", controllers.ProductDelete(productService, logg))
			})
		})

		r.Get("/dashboard", controllers.Dashboard(authService, productService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/user", controllers.AuthCurrentUser(authService, logg))
			r.Post("/logout", controllers.AuthLogout(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(cartService, logg))
				r.Get("/count", controllers.CartCount(cartService, logg))
				r.Post("/add", controllers.CartAddItem(cartService, logg))
				r.Put("/update", controllers.CartUpdateItem(cartService, logg))
				r.Delete("/remove/{productID}", controllers.CartRemoveItem(cartService, logg))
				r.Delete("/clear", controllers.CartClear(cartService, logg))

				r.Post("/checkout", controllers.Checkout(checkoutService, logg))

				r.Get("/orders", controllers.OrderList(orderService, logg))
				r.Get("/orders/{orderID}", controllers.OrderGet(orderService, logg))
				r.Put("/orderstatus/{orderID}", controllers.OrderUpdateStatus(orderService, logg))
			})
		})
	})

	return r
}
