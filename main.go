package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Fenet-Ab/fen-one-shop/configs"
	"github.com/Fenet-Ab/fen-one-shop/middlewares"
	"github.com/Fenet-Ab/fen-one-shop/pkg/logger"
	"github.com/Fenet-Ab/fen-one-shop/pkg/metrics"
	"github.com/Fenet-Ab/fen-one-shop/routes"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		ServiceName: "fen-one-shop",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	defer log.Sync()
	log.Info("starting", cfg.LogFields()...)

	// money goes out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// DB
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		log.Fatal("connect database failed", zap.Error(err))
	}
	if err := configs.SetupDatabase(db); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}
	if err := configs.SeedAdmin(db, log); err != nil {
		log.Fatal("seed admin failed", zap.Error(err))
	}
	if err := configs.SeedCategories(db, log); err != nil {
		log.Fatal("seed categories failed", zap.Error(err))
	}

	metrics.Register()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(logger.Middleware())
	r.Use(metrics.Middleware())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))

	r.Static("/uploads", cfg.UploadDir)

	hub := routes.RegisterRoutes(r, routes.Deps{DB: db, Config: cfg})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
