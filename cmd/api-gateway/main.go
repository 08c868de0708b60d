package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/college-portal-api/api/swagger"
	"github.com/noah-isme/college-portal-api/internal/handler"
	internalmiddleware "github.com/noah-isme/college-portal-api/internal/middleware"
	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/internal/service"
	"github.com/noah-isme/college-portal-api/pkg/config"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
	"github.com/noah-isme/college-portal-api/pkg/export"
	"github.com/noah-isme/college-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/college-portal-api/pkg/middleware/cors"
	devicemiddleware "github.com/noah-isme/college-portal-api/pkg/middleware/device"
	reqidmiddleware "github.com/noah-isme/college-portal-api/pkg/middleware/requestid"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

// @title College Portal API
// @version 1.0.0
// @description Role-based navigation and access control for the college portal.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	store, closeStore, err := newStateStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to init state store", zap.Error(err))
	}
	defer closeStore()

	stateSvc := service.NewStateService(store, metricsSvc, logr)
	notificationSvc := service.NewNotificationService(0, validate, metricsSvc, logr)
	navigationSvc := service.NewNavigationService(stateSvc, service.DefaultPageRegistry(), notificationSvc, metricsSvc, logr)
	profileSvc := service.NewProfileService(stateSvc, logr)
	policySvc := service.NewPolicyService(navigationSvc, validate, logr, export.NewCSVExporter(), export.NewPDFExporter())
	authSvc := service.NewAuthService(logr, service.AuthConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})

	checks := map[string]handler.Pinger{"state": store}

	visitorSync, err := newVisitorSync(ctx, cfg, metricsSvc, logr)
	if err != nil {
		logr.Fatal("failed to init visitor sync", zap.Error(err))
	}
	var dispatcher service.SyncDispatcher
	if visitorSync != nil {
		visitorSync.queue.Start(ctx)
		defer visitorSync.close()
		dispatcher = visitorSync.queue
		if visitorSync.pinger != nil {
			checks["visitor_directory"] = visitorSync.pinger
		}
	}
	visitorSvc := service.NewVisitorService(stateSvc, navigationSvc, dispatcher, validate, metricsSvc, logr)

	navigationHandler := handler.NewNavigationHandler(navigationSvc, notificationSvc, validate)
	visitorHandler := handler.NewVisitorHandler(visitorSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	policyHandler := handler.NewPolicyHandler(policySvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(devicemiddleware.Middleware(devicemiddleware.Options{
		CookieName: cfg.Device.CookieName,
		CookieTTL:  cfg.Device.CookieTTL,
		Secure:     cfg.Device.Secure,
	}))
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(internalmiddleware.WithResponseMeta())

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	public := api.Group("")
	public.Use(internalmiddleware.OptionalJWT(authSvc))
	public.GET("/navigation", navigationHandler.State)
	public.POST("/navigation", navigationHandler.Navigate)
	public.POST("/session/logout", internalmiddleware.Audit(logr, "session.logout"), navigationHandler.Logout)
	public.GET("/visitor/contact", visitorHandler.Contact)
	public.POST("/visitor/contact", visitorHandler.Submit)

	secured := api.Group("")
	secured.Use(internalmiddleware.JWT(authSvc))
	secured.GET("/navigation/allowed", navigationHandler.Allowed)
	secured.GET("/profile", profileHandler.Get)
	secured.GET("/notifications", notificationHandler.List)
	secured.POST("/notifications", notificationHandler.Push)
	secured.POST("/notifications/read", notificationHandler.MarkRead)

	admin := secured.Group("/admin")
	admin.Use(internalmiddleware.RequireRoles(models.RoleAdmin))
	admin.GET("/access-policy", internalmiddleware.Audit(logr, "access_policy.export"), policyHandler.AccessPolicy)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "state_backend", cfg.State.Backend, "visitor_sync", cfg.VisitorSync.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
