// ./mentora-backend/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"mentora/backend/internal/auth"
	"mentora/backend/internal/config"
	"mentora/backend/internal/database"
	"mentora/backend/internal/handlers"
	"mentora/backend/internal/logger"
	"mentora/backend/internal/router"
	"mentora/backend/internal/services"
	"mentora/backend/internal/store"
	"mentora/backend/internal/store/inmem"
	"mentora/backend/internal/store/mongodb"
)

func main() {
	cfg := config.Load()

	hostname, _ := os.Hostname()
	log := logger.New(logger.Options{
		RollbarToken: cfg.RollbarToken,
		Environment:  cfg.Env,
		ServerHost:   hostname,
	})
	defer log.Close()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Initialize Database
	var (
		st      *store.Store
		gateway *database.Gateway
	)
	switch cfg.Store {
	case config.StoreMongo:
		var err error
		gateway, err = database.Connect(ctx, cfg.MongoURI, cfg.DBName)
		if err != nil {
			log.Fatal("failed to connect to MongoDB", err)
		}
		if err := mongodb.EnsureIndexes(ctx, gateway.Database()); err != nil {
			log.Fatal("failed to create MongoDB indexes", err)
		}
		st = mongodb.New(gateway.Database())
	case config.StoreMemory:
		log.Warn("using in-memory store, data will not survive a restart", nil)
		st = inmem.New()
	}

	// Initialize Firebase Admin SDK from Environment Variable
	authClient, err := auth.NewClient(ctx, cfg.FirebaseKeyData)
	if err != nil {
		log.Fatal("failed to initialize Firebase", err)
	}

	h := handlers.New(handlers.Options{
		Store:  st,
		Logger: log,
		Signer: services.NewImageKitSigner(services.ImageKitConfig{
			PublicKey:   cfg.ImageKit.PublicKey,
			PrivateKey:  cfg.ImageKit.PrivateKey,
			URLEndpoint: cfg.ImageKit.URLEndpoint,
		}),
		Payments: services.NewPaymentService(cfg.StripeSecretKey),
		Timeout:  cfg.RequestTimeout,
	})

	engine := router.New(router.Options{
		Handler:     h,
		Verifier:    authClient,
		Users:       st.Users,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infof("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", err)
	}
	if gateway != nil {
		if err := gateway.Disconnect(shutdownCtx); err != nil {
			log.Error("disconnecting from MongoDB", err)
		}
	}
	log.Infof("Server exited")
}
