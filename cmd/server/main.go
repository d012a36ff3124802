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

	"smartclaim/internal/config"
	"smartclaim/internal/email/noop"
	sesemail "smartclaim/internal/email/ses"
	"smartclaim/internal/fetcher"
	"smartclaim/internal/handler"
	"smartclaim/internal/parser"
	"smartclaim/internal/parser/providers"
	"smartclaim/internal/port"
	"smartclaim/internal/repository/postgres"
	"smartclaim/internal/router"
	"smartclaim/internal/service"
	s3storage "smartclaim/internal/storage/s3"
	claimvalidator "smartclaim/internal/validator/claim"
)

// @title SmartClaim API
// @version 1.0
// @description Medical claim intake: invoice images in, structured claims out.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	claimRepo := postgres.NewClaimRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize extraction model chain
	providers.Register()
	chain, err := parser.NewParserChain(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to initialize parser: %w", err)
	}
	docParser := parser.NewRateLimitedParser(chain, cfg.Parser.RequestsPerSecond, cfg.Parser.Burst)
	log.Printf("Extraction provider: %s (registered: %v)", cfg.Parser.PrimaryConfig().Provider, parser.RegisteredProviders())

	emailSender, err := newEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, emailSender, cfg.JWT, cfg.Auth)
	extractSvc := service.NewExtractionService(
		userRepo, claimRepo,
		fetcher.NewFetcher(&cfg.Fetch),
		docParser,
		claimvalidator.NewNormalizer(&cfg.Extraction),
		emailSender,
	)
	claimSvc := service.NewClaimService(claimRepo)
	statsSvc := service.NewStatsService(claimRepo)
	docSvc := service.NewDocumentService(userRepo, s3Client, &cfg.S3)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	claimH := handler.NewClaimHandler(extractSvc, claimSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	documentH := handler.NewDocumentHandler(docSvc)
	healthH := handler.NewHealthHandler(db, s3Client, cfg.S3.Bucket)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, claimH, statsH, documentH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Println("Shutdown signal received, shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

func newEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		log.Printf("Email provider: ses (%s)", cfg.Region)
		return sesemail.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.FrontendURL)
	case "", "noop":
		log.Println("Email provider: noop")
		return noop.NewNoopSender(cfg.FrontendURL), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
