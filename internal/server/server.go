// Package server wires every service into one chi router: the flow
// endpoints, onboarding, payments, activation, and the operational
// endpoints (health, metrics, catalog).
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"creditflow-engine/internal/activation"
	"creditflow-engine/internal/common/config"
	"creditflow-engine/internal/common/errors"
	"creditflow-engine/internal/common/logger"
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
	"creditflow-engine/pkg/catalog"
)

// Services bundles everything the router needs. Any nil service leaves
// its routes unregistered, which keeps tests small.
type Services struct {
	DisputeLetter     *disputeletter.Service
	CreditAnalysis    *creditanalysis.Service
	BusinessAnalysis  *businessanalysis.Service
	BureauResponse    *bureauresponse.Service
	TradelineStrategy *tradelinestrategy.Service
	FundingPredict    *fundingpredict.Service
	VendorApply       *vendorapply.Service
	SiteChat          *sitechat.Service
	Onboarding        *onboarding.Service
	Payments          *payments.Service
	Activation        *activation.Service
	Mailer            *mailer.Service
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
	services   Services
	responder  *errors.Responder
	catalog    *catalog.FlowCatalog
	logger     logger.Logger
}

func New(cfg config.ServerConfig, services Services, log logger.Logger) *Server {
	s := &Server{
		services:  services,
		responder: errors.NewResponder(log),
		catalog:   catalog.Build(),
		logger:    log.With(map[string]interface{}{"component": "http-server"}),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/catalog/{operation}", s.handleCatalogOperation)

		r.Route("/flows", func(r chi.Router) {
			if services.DisputeLetter != nil {
				r.Post("/dispute-letter", s.handleDisputeLetter)
			}
			if services.CreditAnalysis != nil {
				r.Post("/credit-analysis", s.handleCreditAnalysis)
			}
			if services.BusinessAnalysis != nil {
				r.Post("/business-analysis", s.handleBusinessAnalysis)
			}
			if services.BureauResponse != nil {
				r.Post("/bureau-response", s.handleBureauResponse)
			}
			if services.TradelineStrategy != nil {
				r.Post("/tradeline-strategy", s.handleTradelineStrategy)
			}
			if services.FundingPredict != nil {
				r.Post("/funding-predict", s.handleFundingPredict)
			}
			if services.VendorApply != nil {
				r.Post("/vendor-apply", s.handleVendorApply)
			}
			if services.SiteChat != nil {
				r.Post("/site-chat", s.handleSiteChat)
			}
		})

		if services.Onboarding != nil {
			r.Post("/onboarding/client", s.handleOnboardClient)
			r.Post("/onboarding/business", s.handleOnboardBusiness)
		}
		if services.Payments != nil {
			r.Post("/payments/checkout", s.handleCreateCheckout)
			r.Post("/payments/webhook", s.handlePaymentWebhook)
		}
		if services.Activation != nil {
			r.Post("/activate", s.handleActivate)
		}
		if services.Mailer != nil {
			r.Post("/letters/certified", s.handleCertifiedLetter)
		}
	})

	readTimeout := time.Duration(cfg.ReadTimeout) * time.Second
	if readTimeout == 0 {
		readTimeout = 30 * time.Second
	}
	writeTimeout := time.Duration(cfg.WriteTimeout) * time.Second
	if writeTimeout == 0 {
		writeTimeout = 2 * time.Minute
	}

	s.router = r
	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      r,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	return s
}

// Router exposes the handler tree for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
