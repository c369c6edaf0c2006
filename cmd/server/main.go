package main

import (
	"context"
	"fmt"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/luxegear/internal/api"
	"github.com/kahvecikaan/luxegear/internal/cart"
	"github.com/kahvecikaan/luxegear/internal/checkout"
	"github.com/kahvecikaan/luxegear/internal/domain"
	"github.com/kahvecikaan/luxegear/internal/events"
	"github.com/kahvecikaan/luxegear/internal/repository"
	"github.com/kahvecikaan/luxegear/internal/service"
	"github.com/kahvecikaan/luxegear/internal/session"
	"github.com/kahvecikaan/luxegear/internal/storage"
	httpTransport "github.com/kahvecikaan/luxegear/internal/transport/http"
	websocketTransport "github.com/kahvecikaan/luxegear/internal/transport/websocket"
	"github.com/nicholasjackson/env"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// Environment variables
var (
	bindAddress = env.String("BIND_ADDRESS", false,
		":9090", "Bind address for the server")
	logLevel = env.String("LOG_LEVEL", false,
		"debug", "Log output level for the server [debug, info, trace]")
	apiURL = env.String("API_URL", false,
		"", "Base URL of the storefront backend, empty runs without one")
	storageKind = env.String("STORAGE", false,
		"memory", "Session storage backend [memory, file, redis]")
	storageDir = env.String("STORAGE_DIR", false,
		"./data/sessions", "Directory used by the file storage backend")
	redisURL = env.String("REDIS_URL", false,
		"redis://localhost:6379/0", "URL of the redis storage backend")
	sessionTTL = env.String("SESSION_TTL", false,
		"720h", "Expiry of session keys in redis")
	maxSessions = env.String("MAX_SESSIONS", false,
		strconv.Itoa(session.DefaultMaxSessions), "Maximum number of sessions held in memory")
	sessionIdle = env.String("SESSION_IDLE", false,
		session.DefaultIdleTimeout.String(), "Idle time after which a session is dropped from memory")
	couponsFile = env.String("COUPONS_FILE", false,
		"", "YAML file with the coupon table, empty uses the built-in coupons")
	checkoutDelay = env.String("CHECKOUT_DELAY", false,
		checkout.DefaultDelay.String(), "Simulated payment processing time")
	corsOrigins = env.String("CORS_ORIGINS", false,
		"http://localhost:5173", "Comma separated list of allowed CORS origins")
)

func main() {
	env.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "luxegear",
		Level: hclog.LevelFromString(*logLevel),
	})

	delay, err := time.ParseDuration(*checkoutDelay)
	if err != nil {
		logger.Error("Invalid CHECKOUT_DELAY", "value", *checkoutDelay, "error", err)
		os.Exit(1)
	}

	sessionLimit, err := strconv.Atoi(*maxSessions)
	if err != nil || sessionLimit < 1 {
		logger.Error("Invalid MAX_SESSIONS", "value", *maxSessions, "error", err)
		os.Exit(1)
	}
	idle, err := time.ParseDuration(*sessionIdle)
	if err != nil || idle <= 0 {
		logger.Error("Invalid SESSION_IDLE", "value", *sessionIdle, "error", err)
		os.Exit(1)
	}

	standardLogger := logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true})

	// Initialize the event bus - this will be shared between services
	eventBus := events.NewEventBus[any]()

	store, closeStore, err := openStore(logger)
	if err != nil {
		logger.Error("Unable to open session storage", "storage", *storageKind, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	coupons := cart.DefaultCoupons()
	if *couponsFile != "" {
		coupons, err = cart.LoadCoupons(*couponsFile)
		if err != nil {
			logger.Error("Unable to load coupons", "file", *couponsFile, "error", err)
			os.Exit(1)
		}
		logger.Info("Loaded coupons", "file", *couponsFile, "count", len(coupons))
	}

	client := api.NewClient(*apiURL, api.WithLogger(logger.Named("api-client")))
	if !client.Configured() {
		logger.Warn("No API_URL set, sign-in and orders are handled locally")
	}

	validator := domain.NewValidation()

	prodRep := repository.NewMemoryProductRepository()
	ps := service.NewProductService(prodRep, eventBus, logger.Named("product-service"))

	sessions := session.NewManager(session.Config{
		Store:         store,
		Coupons:       coupons,
		Client:        client,
		Publisher:     eventBus,
		Validation:    validator,
		CheckoutDelay: delay,
		MaxSessions:   sessionLimit,
		IdleTimeout:   idle,
		Logger:        logger,
	})

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessions.Run(sweepCtx, idle/2)

	cors := httpTransport.DefaultCORSConfig()
	cors.AllowedOrigins = strings.Split(*corsOrigins, ",")

	handlers := httpTransport.Handlers{
		Products:  httpTransport.NewProductHandler(ps, logger.Named("product-handler")),
		Cart:      httpTransport.NewCartHandler(ps, eventBus, logger.Named("cart-handler")),
		Wishlist:  httpTransport.NewWishlistHandler(ps, eventBus, logger.Named("wishlist-handler")),
		Auth:      httpTransport.NewAuthHandler(client, validator, eventBus, logger.Named("auth-handler")),
		Checkout:  httpTransport.NewCheckoutHandler(logger.Named("checkout-handler")),
		Admin:     httpTransport.NewAdminHandler(client, eventBus, logger.Named("admin-handler")),
		WebSocket: websocketTransport.NewHandler(logger.Named("websocket-handler"), eventBus, cors.AllowedOrigins...),
	}

	mw := httpTransport.NewMiddleware(logger.Named("http"), validator, sessions, cors)

	router := httpTransport.NewRouter(handlers, mw)

	// WriteTimeout leaves room for the simulated payment processing
	server := &http.Server{
		Addr:         *bindAddress,
		Handler:      router,
		ErrorLog:     standardLogger,
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10*time.Second + delay,
	}

	go func() {
		logger.Info("Starting server", "bind_address", *bindAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Error starting server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutting down server", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server", "error", err)
	}
}

// openStore creates the session storage selected by STORAGE
func openStore(logger hclog.Logger) (storage.Store, func(), error) {
	switch *storageKind {
	case "memory":
		return storage.NewMemory(), func() {}, nil
	case "file":
		f, err := storage.NewFile(*storageDir, storage.DefaultMaxFileSize)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using file storage", "dir", *storageDir)
		return f, func() {}, nil
	case "redis":
		ttl, err := time.ParseDuration(*sessionTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		r, err := storage.DialRedis(ctx, *redisURL, storage.WithKeyPrefix("luxegear:"), storage.WithTTL(ttl))
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using redis storage", "url", *redisURL)
		return r, func() {
			if err := r.Close(); err != nil {
				logger.Error("Error closing redis", "error", err)
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage %q", *storageKind)
}
