package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rajchaudar/HR-Dep/api/routes"
	authsvc "github.com/rajchaudar/HR-Dep/internal/auth"
	cartsvc "github.com/rajchaudar/HR-Dep/internal/cart"
	checkoutsvc "github.com/rajchaudar/HR-Dep/internal/checkout"
	ordersvc "github.com/rajchaudar/HR-Dep/internal/orders"
	productsvc "github.com/rajchaudar/HR-Dep/internal/products"
	"github.com/rajchaudar/HR-Dep/internal/users"
	"github.com/rajchaudar/HR-Dep/pkg/config"
	"github.com/rajchaudar/HR-Dep/pkg/db"
	"github.com/rajchaudar/HR-Dep/pkg/logger"
	"github.com/rajchaudar/HR-Dep/pkg/mailer"
	"github.com/rajchaudar/HR-Dep/pkg/metrics"
	"github.com/rajchaudar/HR-Dep/pkg/migrate"
	"github.com/rajchaudar/HR-Dep/pkg/payments/stripe"
	"github.com/rajchaudar/HR-Dep/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	var mailSender mailer.Sender
	if cfg.SMTP.Configured() {
		smtpMailer, err := mailer.New(cfg.SMTP)
		if err != nil {
			logg.Error(context.Background(), "failed to configure mailer", err)
			os.Exit(1)
		}
		mailSender = smtpMailer
	} else {
		logg.Warn(context.Background(), "smtp not configured, password reset emails disabled")
	}

	var googleClient authsvc.GoogleVerifier
	if cfg.Google.Configured() {
		client, err := authsvc.NewGoogleClient(cfg.Google)
		if err != nil {
			logg.Error(context.Background(), "failed to configure google sign-in", err)
			os.Exit(1)
		}
		googleClient = client
	} else {
		logg.Warn(context.Background(), "google credentials not configured, google sign-in disabled")
	}

	usersRepo := users.NewRepository(dbClient.DB())
	authService, err := authsvc.NewService(usersRepo, mailSender, googleClient, cfg.JWT, cfg.Password, cfg.App, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	productRepo := productsvc.NewRepository(dbClient.DB())
	productService, err := productsvc.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartRepo := cartsvc.NewRepository(dbClient.DB())
	cartService, err := cartsvc.NewService(cartRepo, productRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	orderRepo := ordersvc.NewRepository(dbClient.DB())
	orderService, err := ordersvc.NewService(orderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	var checkoutService checkoutsvc.Service
	if cfg.Stripe.SecretKey != "" {
		stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap stripe", err)
			os.Exit(1)
		}
		checkoutService, err = checkoutsvc.NewService(cartRepo, orderRepo, stripeClient, dbClient, cfg.Checkout, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create checkout service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "stripe not configured, checkout disabled")
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			authService,
			productService,
			cartService,
			orderService,
			checkoutService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
