// Package onboarding sequences AI flow calls and CRM notifications for new
// client and business signups. Every run is strictly sequential: the CRM is
// only ever notified after the primary AI step has produced usable output.
package onboarding

import (
	"context"
	"fmt"
	"strings"

	"creditflow-engine/internal/common/config"
	"creditflow-engine/internal/common/crm"
	"creditflow-engine/internal/common/logger"
	"creditflow-engine/internal/common/metrics"
	businessanalysis "creditflow-engine/internal/flows/business-analysis"
	creditanalysis "creditflow-engine/internal/flows/credit-analysis"
	disputeletter "creditflow-engine/internal/flows/dispute-letter"
	"creditflow-engine/internal/models"
	"creditflow-engine/internal/store"
)

// CreditAnalyzer runs the personal credit analysis flow.
type CreditAnalyzer interface {
	Execute(ctx context.Context, input *creditanalysis.Input) (*creditanalysis.Output, error)
}

// LetterGenerator runs the dispute letter flow.
type LetterGenerator interface {
	Execute(ctx context.Context, input *disputeletter.Input) (*disputeletter.Output, error)
}

// BusinessAnalyzer runs the business credit analysis flow.
type BusinessAnalyzer interface {
	Execute(ctx context.Context, input *businessanalysis.Input) (*businessanalysis.Output, error)
}

// WorkflowNotifier enrolls a contact into one CRM workflow.
type WorkflowNotifier interface {
	AddToWorkflow(ctx context.Context, workflowID string, contact *crm.Contact) (*crm.EnrollmentResult, error)
}

// TokenIssuer mints a single-use activation token for a client record.
type TokenIssuer interface {
	Issue(ctx context.Context, clientID string) (string, error)
}

// ActivationMailer delivers the activation link.
type ActivationMailer interface {
	SendActivationEmail(ctx context.Context, to, name, activationURL string) error
}

// Service orchestrates onboarding runs. It performs no deduplication:
// two calls with the same email are two independent runs.
type Service struct {
	analyzer       CreditAnalyzer
	letters        LetterGenerator
	business       BusinessAnalyzer
	notifier       WorkflowNotifier
	store          store.ClientStore
	workflows      config.WorkflowsConfig
	tokens         TokenIssuer
	mail           ActivationMailer
	activationBase string
	logger         logger.Logger
}

func NewService(
	analyzer CreditAnalyzer,
	letters LetterGenerator,
	business BusinessAnalyzer,
	notifier WorkflowNotifier,
	clientStore store.ClientStore,
	workflows config.WorkflowsConfig,
	log logger.Logger,
) *Service {
	return &Service{
		analyzer:  analyzer,
		letters:   letters,
		business:  business,
		notifier:  notifier,
		store:     clientStore,
		workflows: workflows,
		logger:    log.With(map[string]interface{}{"component": "onboarding"}),
	}
}

// WithActivation enables the activation-link email after successful runs.
// Without it (and without a store to key tokens on) the step is skipped.
func (s *Service) WithActivation(tokens TokenIssuer, mail ActivationMailer, baseURL string) *Service {
	s.tokens = tokens
	s.mail = mail
	s.activationBase = baseURL
	return s
}

const failureMessage = "We could not process your credit report. Please check the uploaded file and try again."

// OnboardClient runs the personal signup sequence: analyze the report,
// generate dispute letters, then notify the CRM. AI failures come back as
// an unsuccessful result, not an error; only persistence failures on the
// client record itself are returned as errors.
func (s *Service) OnboardClient(ctx context.Context, input *ClientInput) (*models.OnboardingResult, error) {
	log := s.logger.With(map[string]interface{}{"clientEmail": input.ClientEmail})
	log.Info("starting personal onboarding", nil)

	clientID, err := s.ensureClient(ctx, &models.ClientRecord{
		Email:       input.ClientEmail,
		FirstName:   firstName(input.ClientName),
		LastName:    lastName(input.ClientName),
		Phone:       input.ClientPhone,
		Type:        models.ClientTypePersonal,
		AffiliateID: normalizeAffiliate(input.AffiliateID),
	})
	if err != nil {
		metrics.OnboardingCompleted.WithLabelValues(string(models.ClientTypePersonal), "error").Inc()
		return nil, err
	}

	analysis, err := s.analyzer.Execute(ctx, &creditanalysis.Input{
		CreditReportDataURI: input.CreditReportDataURI,
	})
	if err != nil {
		log.Warn("credit analysis failed", map[string]interface{}{"error": err.Error()})
		return s.failure(models.ClientTypePersonal, clientID), nil
	}

	letters, err := s.letters.Execute(ctx, &disputeletter.Input{
		ClientName:          input.ClientName,
		ClientEmail:         input.ClientEmail,
		ClientAddress:       input.ClientAddress,
		DisputeReason:       input.DisputeReason,
		PersonalInfoText:    input.PersonalInfoText,
		CreditReportDataURI: input.CreditReportDataURI,
	})
	if err != nil {
		log.Warn("dispute letter generation failed", map[string]interface{}{"error": err.Error()})
		return s.failure(models.ClientTypePersonal, clientID), nil
	}

	letter := letters.FirstNonEmpty()
	if letter == "" {
		log.Warn("generation produced no usable letter", nil)
		return s.failure(models.ClientTypePersonal, clientID), nil
	}

	s.saveAnalysis(ctx, clientID, models.AnalysisTypePersonalCredit, analysis, log)

	s.notify(ctx, s.workflows.ClientWelcome, &crm.Contact{
		Name:  input.ClientName,
		Email: input.ClientEmail,
		Phone: input.ClientPhone,
		Tags:  []string{"new-client", "referral:" + referralTag(input.ReferralSource)},
	}, log)

	if affiliate := normalizeAffiliate(input.AffiliateID); affiliate != "" {
		s.notify(ctx, s.workflows.AffiliateNotify, &crm.Contact{
			Name:  input.ClientName,
			Email: input.ClientEmail,
			Tags:  []string{"affiliate-lead"},
			CustomFields: map[string]string{
				"affiliateId": affiliate,
				"leadName":    input.ClientName,
				"leadEmail":   input.ClientEmail,
			},
		}, log)
	}

	s.sendActivationLink(ctx, clientID, input.ClientEmail, input.ClientName, log)

	metrics.OnboardingCompleted.WithLabelValues(string(models.ClientTypePersonal), "success").Inc()
	log.Info("personal onboarding completed", map[string]interface{}{"clientId": clientID})

	return &models.OnboardingResult{
		Success:         true,
		Message:         "Onboarding complete. Your dispute letter is ready.",
		GeneratedLetter: letter,
		Analysis: &models.PersonalAnalysis{
			Summary:     analysis.Summary,
			ActionItems: analysis.ActionItems,
		},
		ClientID: clientID,
	}, nil
}

// OnboardBusiness runs the business signup sequence: a single fundability
// analysis followed by CRM enrollment with the grade and score as custom
// fields.
func (s *Service) OnboardBusiness(ctx context.Context, input *BusinessInput) (*models.OnboardingResult, error) {
	log := s.logger.With(map[string]interface{}{
		"businessName": input.BusinessName,
		"contactEmail": input.ContactEmail,
	})
	log.Info("starting business onboarding", nil)

	clientID, err := s.ensureClient(ctx, &models.ClientRecord{
		Email:       input.ContactEmail,
		FirstName:   firstName(input.ContactName),
		LastName:    lastName(input.ContactName),
		Phone:       input.ContactPhone,
		Type:        models.ClientTypeBusiness,
		AffiliateID: normalizeAffiliate(input.AffiliateID),
	})
	if err != nil {
		metrics.OnboardingCompleted.WithLabelValues(string(models.ClientTypeBusiness), "error").Inc()
		return nil, err
	}

	analysis, err := s.business.Execute(ctx, &businessanalysis.Input{
		BusinessName:  input.BusinessName,
		State:         input.State,
		ReportDataURI: input.ReportDataURI,
	})
	if err != nil {
		log.Warn("business analysis failed", map[string]interface{}{"error": err.Error()})
		return s.failure(models.ClientTypeBusiness, clientID), nil
	}

	s.saveAnalysis(ctx, clientID, models.AnalysisTypeBusinessCredit, analysis, log)

	s.notify(ctx, s.workflows.BusinessWelcome, &crm.Contact{
		Name:  input.ContactName,
		Email: input.ContactEmail,
		Phone: input.ContactPhone,
		Tags:  []string{"new-business", "referral:" + referralTag(input.ReferralSource)},
		CustomFields: map[string]string{
			"businessName":     input.BusinessName,
			"fundabilityGrade": analysis.Grade,
			"fundabilityScore": fmt.Sprintf("%.0f", analysis.FundabilityScore),
		},
	}, log)

	if affiliate := normalizeAffiliate(input.AffiliateID); affiliate != "" {
		s.notify(ctx, s.workflows.BusinessAffiliate, &crm.Contact{
			Name:  input.ContactName,
			Email: input.ContactEmail,
			Tags:  []string{"affiliate-lead"},
			CustomFields: map[string]string{
				"affiliateId": affiliate,
				"leadName":    input.ContactName,
				"leadEmail":   input.ContactEmail,
			},
		}, log)
	}

	s.sendActivationLink(ctx, clientID, input.ContactEmail, input.ContactName, log)

	metrics.OnboardingCompleted.WithLabelValues(string(models.ClientTypeBusiness), "success").Inc()
	log.Info("business onboarding completed", map[string]interface{}{
		"clientId": clientID,
		"grade":    analysis.Grade,
	})

	return &models.OnboardingResult{
		Success: true,
		Message: "Business onboarding complete. Your fundability report is ready.",
		BusinessAnalysis: &models.BusinessAnalysis{
			FundabilityScore: analysis.FundabilityScore,
			Grade:            analysis.Grade,
			RiskFactors:      analysis.RiskFactors,
			ActionPlan:       analysis.ActionPlan,
			DNBScore:         analysis.DNBScore,
			ExperianScore:    analysis.ExperianScore,
			EquifaxScore:     analysis.EquifaxScore,
		},
		ClientID: clientID,
	}, nil
}

// ensureClient looks the client up by email and creates the record when
// absent. With no store configured the run proceeds without persistence.
func (s *Service) ensureClient(ctx context.Context, record *models.ClientRecord) (string, error) {
	if s.store == nil {
		return "", nil
	}
	existing, err := s.store.FindClientByEmail(ctx, record.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}
	return s.store.CreateClient(ctx, record)
}

func (s *Service) saveAnalysis(ctx context.Context, clientID string, analysisType models.AnalysisType, payload interface{}, log logger.Logger) {
	if s.store == nil || clientID == "" {
		return
	}
	if _, err := s.store.SaveAnalysis(ctx, clientID, analysisType, payload); err != nil {
		log.Error("failed to persist analysis", map[string]interface{}{
			"analysisType": string(analysisType),
			"error":        err.Error(),
		})
	}
}

// sendActivationLink issues a token and emails it. Like CRM enrollment it
// is best-effort: a failure here never changes the onboarding result.
func (s *Service) sendActivationLink(ctx context.Context, clientID, email, name string, log logger.Logger) {
	if s.tokens == nil || s.mail == nil || clientID == "" {
		return
	}
	token, err := s.tokens.Issue(ctx, clientID)
	if err != nil {
		log.Warn("activation token issue failed", map[string]interface{}{"error": err.Error()})
		return
	}
	url := fmt.Sprintf("%s?token=%s", s.activationBase, token)
	if err := s.mail.SendActivationEmail(ctx, email, name, url); err != nil {
		log.Warn("activation email failed", map[string]interface{}{"error": err.Error()})
	}
}

// notify enrolls the contact and swallows the outcome. Enrollment failures
// never change the onboarding result; they are logged and counted so silent
// CRM breakage still shows up on the dashboard.
func (s *Service) notify(ctx context.Context, workflowID string, contact *crm.Contact, log logger.Logger) {
	result, err := s.notifier.AddToWorkflow(ctx, workflowID, contact)
	status := "success"
	if err != nil {
		status = "error"
		log.Warn("CRM enrollment failed", map[string]interface{}{
			"workflow": workflowID,
			"error":    err.Error(),
		})
	} else if result != nil && !result.Success {
		status = "rejected"
		log.Warn("CRM rejected enrollment", map[string]interface{}{
			"workflow": workflowID,
			"message":  result.Message,
		})
	}
	metrics.CRMNotifications.WithLabelValues(workflowID, status).Inc()
}

func (s *Service) failure(clientType models.ClientType, clientID string) *models.OnboardingResult {
	metrics.OnboardingCompleted.WithLabelValues(string(clientType), "failure").Inc()
	return &models.OnboardingResult{
		Success:  false,
		Message:  failureMessage,
		ClientID: clientID,
	}
}

// normalizeAffiliate maps the "none" sentinel and blanks to the empty
// string so callers only see real affiliate ids.
func normalizeAffiliate(id string) string {
	if id == "" || id == models.AffiliateNone {
		return ""
	}
	return id
}

func referralTag(source string) string {
	if source == "" {
		return "direct"
	}
	return source
}

// firstName and lastName split a display name on the last space so
// multi-part first names survive.
func firstName(full string) string {
	full = strings.TrimSpace(full)
	if i := strings.LastIndex(full, " "); i >= 0 {
		return full[:i]
	}
	return full
}

func lastName(full string) string {
	full = strings.TrimSpace(full)
	if i := strings.LastIndex(full, " "); i >= 0 {
		return full[i+1:]
	}
	return ""
}
