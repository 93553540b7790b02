package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"creditflow-engine/internal/common/errors"
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
)

// signatureHeader carries the payment provider's HMAC of the webhook body.
const signatureHeader = "X-Webhook-Signature"

func (s *Server) decode(w http.ResponseWriter, r *http.Request, into interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		stdErr := errors.NewValidationError("body", "must be valid JSON")
		stdErr.Details = err.Error()
		s.responder.WriteError(w, stdErr)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ==========================
// Operational
// ==========================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog)
}

func (s *Server) handleCatalogOperation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "operation")
	entry := s.catalog.Find(id)
	if entry == nil {
		s.responder.WriteError(w, errors.NewOperationNotFoundError(id))
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

// ==========================
// Flow Endpoints
// ==========================

func (s *Server) handleDisputeLetter(w http.ResponseWriter, r *http.Request) {
	var input disputeletter.Input
	if !s.decode(w, r, &input) {
		return
	}
	output, err := s.services.DisputeLetter.Execute(r.Context(), &input)
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleCreditAnalysis(w http.ResponseWriter, r *http.Request) {
	var input creditanalysis.Input
	if !s.decode(w, r, &input) {
		return
	}
	output, err := s.services.CreditAnalysis.Execute(r.Context(), &input)
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleBusinessAnalysis(w http.ResponseWriter, r *http.Request) {
	var input businessanalysis.Input
	if !s.decode(w, r, &input) {
		return
	}
	output, err := s.services.BusinessAnalysis.Execute(r.Context(), &input)
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleBureauResponse(w http.ResponseWriter, r *http.Request) {
	var input bureauresponse.Input
	if !s.decode(w, r, &input) {
		return
	}
	output, err := s.services.BureauResponse.Execute(r.Context(), &input)
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleTradelineStrategy(w http.ResponseWriter, r *http.Request) {
	var input tradelinestrategy.Input
	if !s.decode(w, r, &input) {
		return
	}
	output, err := s.services.TradelineStrategy.Execute(r.Context(), &input)
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleFundingPredict(w http.ResponseWriter, r *http.Request) {
	var input fundingpredict.Input
	if !s.decode(w, r, &input) {
		return
	}
	output, err := s.services.FundingPredict.Execute(r.Context(), &input)
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleVendorApply(w http.ResponseWriter, r *http.Request) {
	var input vendorapply.Input
	if !s.decode(w, r, &input) {
		return
	}
	output, err := s.services.VendorApply.Execute(r.Context(), &input)
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleSiteChat(w http.ResponseWriter, r *http.Request) {
	var input sitechat.Input
	if !s.decode(w, r, &input) {
		return
	}
	output, err := s.services.SiteChat.Execute(r.Context(), &input)
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, output)
}

// ==========================
// Onboarding
// ==========================

func (s *Server) handleOnboardClient(w http.ResponseWriter, r *http.Request) {
	var input onboarding.ClientInput
	if !s.decode(w, r, &input) {
		return
	}
	result, err := s.services.Onboarding.OnboardClient(r.Context(), &input)
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleOnboardBusiness(w http.ResponseWriter, r *http.Request) {
	var input onboarding.BusinessInput
	if !s.decode(w, r, &input) {
		return
	}
	result, err := s.services.Onboarding.OnboardBusiness(r.Context(), &input)
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// ==========================
// Payments
// ==========================

type checkoutRequest struct {
	ClientID    string `json:"clientId"`
	ProductType string `json:"productType"`
}

func (s *Server) handleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !s.decode(w, r, &req) {
		return
	}
	session, err := s.services.Payments.CreateCheckout(r.Context(), req.ClientID, req.ProductType)
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		stdErr := errors.NewValidationError("body", "could not be read")
		s.responder.WriteError(w, stdErr)
		return
	}
	ack, err := s.services.Payments.HandleWebhook(r.Context(), body, r.Header.Get(signatureHeader))
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ack)
}

// ==========================
// Certified Mail
// ==========================

func (s *Server) handleCertifiedLetter(w http.ResponseWriter, r *http.Request) {
	var letter mailer.Letter
	if !s.decode(w, r, &letter) {
		return
	}
	submission, err := s.services.Mailer.SubmitCertifiedLetter(r.Context(), &letter)
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, submission)
}

// ==========================
// Activation
// ==========================

type activateRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	var req activateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Token == "" {
		s.responder.WriteError(w, errors.NewValidationError("token", "is required"))
		return
	}
	if len(req.Password) < 8 {
		s.responder.WriteError(w, errors.NewValidationError("password", "must be at least 8 characters"))
		return
	}
	result, err := s.services.Activation.Activate(r.Context(), req.Token, req.Password)
	if err != nil {
		s.responder.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}
