// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"creditflow-engine/internal/activation"
	"creditflow-engine/internal/common/auth"
	awsclient "creditflow-engine/internal/common/aws"
	"creditflow-engine/internal/common/config"
	"creditflow-engine/internal/common/crm"
	"creditflow-engine/internal/common/database"
	"creditflow-engine/internal/common/gemini"
	"creditflow-engine/internal/common/logger"
	"creditflow-engine/internal/common/observability"
	"creditflow-engine/internal/flows"
	bureauresponse "creditflow-engine/internal/flows/bureau-response"
	businessanalysis "creditflow-engine/internal/flows/business-analysis"
	creditanalysis "creditflow-engine/internal/flows/credit-analysis"
	disputeletter "creditflow-engine/internal/flows/dispute-letter"
	fundingpredict "creditflow-engine/internal/flows/funding-predict"
	sitechat "creditflow-engine/internal/flows/site-chat"
	tradelinestrategy "creditflow-engine/internal/flows/tradeline-strategy"
	vendorapply "creditflow-engine/internal/flows/vendor-apply"
	"creditflow-engine/internal/mailer"
	"creditflow-engine/internal/onboarding"
	"creditflow-engine/internal/payments"
	"creditflow-engine/internal/server"
	"creditflow-engine/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting creditflow engine...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("creditflow-engine")
	ctx := context.Background()

	// --- PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "PostgreSQL initialization")
	if err != nil {
		zapLog.Fatal("postgres unavailable", zap.Error(err))
	}
	defer pg.Close()
	clientStore := store.NewPostgresStore(pg.DB)

	// --- Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis initialization")
	if err != nil {
		zapLog.Fatal("redis unavailable", zap.Error(err))
	}
	defer redisClient.Close()

	// --- AI backend ---
	generator, err := gemini.NewClient(ctx, cfg.GenAI)
	if err != nil {
		zapLog.Fatal("gemini client init failed", zap.Error(err))
	}
	invoker := flows.NewInvoker(generator, log).WithObservability(obs)

	// --- Flow services ---
	services := server.Services{
		DisputeLetter:     disputeletter.NewService(invoker, log),
		CreditAnalysis:    creditanalysis.NewService(invoker, log),
		BusinessAnalysis:  businessanalysis.NewService(invoker, log),
		BureauResponse:    bureauresponse.NewService(invoker, log),
		TradelineStrategy: tradelinestrategy.NewService(invoker, log),
		FundingPredict:    fundingpredict.NewService(invoker, log),
		VendorApply:       vendorapply.NewService(invoker, nil, log),
		SiteChat:          sitechat.NewService(invoker, log),
	}

	// --- Integrations ---
	crmClient := crm.NewClient(
		cfg.Integrations.CRM.BaseURL,
		cfg.Integrations.CRM.APIKey,
		cfg.Integrations.CRM.OAuthToken,
	)

	var emailSender mailer.EmailSender
	if cfg.Integrations.AWS.SES.Enabled {
		sesClient, err := awsclient.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("SES client init failed", zap.Error(err))
		}
		emailSender = sesClient
	}
	services.Mailer = mailer.NewService(emailSender, cfg.Integrations, log)

	services.Onboarding = onboarding.NewService(
		services.CreditAnalysis,
		services.DisputeLetter,
		services.BusinessAnalysis,
		crmClient,
		clientStore,
		cfg.Workflows,
		log,
	)

	paymentsService, err := payments.NewService(cfg.Payments, clientStore, log)
	if err != nil {
		zapLog.Fatal("payments service init failed", zap.Error(err))
	}
	services.Payments = paymentsService

	keycloak := auth.NewKeycloakClient(
		cfg.Integrations.Identity.URL,
		cfg.Integrations.Identity.Realm,
		cfg.Integrations.Identity.ClientID,
		cfg.Integrations.Identity.ClientSecret,
	)
	tokenStore := activation.NewTokenStore(redisClient, time.Duration(cfg.Activation.TokenTTL)*time.Hour)
	services.Activation = activation.NewService(tokenStore, keycloak, clientStore, log)
	services.Onboarding.WithActivation(tokenStore, services.Mailer, cfg.Activation.BaseURL)

	// --- HTTP server ---
	srv := server.New(cfg.Server, services, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		zapLog.Error("http server stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("observability shutdown failed", zap.Error(err))
	}

	zapLog.Info("creditflow engine stopped")
}
