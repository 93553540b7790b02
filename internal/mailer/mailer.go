// Package mailer covers the two outbound mail paths: transactional email
// through SES and certified physical letters through the print-and-mail
// vendor. The certified path is simulated until the vendor contract is
// signed; submissions are logged and tracked but nothing is printed.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"creditflow-engine/internal/common/config"
	"creditflow-engine/internal/common/errors"
	"creditflow-engine/internal/common/logger"
	"creditflow-engine/internal/common/metrics"
)

// EmailSender is the transactional-email boundary, satisfied by the SES
// client.
type EmailSender interface {
	SendSimpleEmail(ctx context.Context, from, to, subject, body string) (string, error)
}

// Letter is one certified-mail submission: a generated dispute letter
// addressed to a credit bureau.
type Letter struct {
	RecipientName    string `json:"recipientName"`
	RecipientAddress string `json:"recipientAddress"`
	Body             string `json:"body"`
}

// Submission is the certified-mail vendor's acknowledgment.
type Submission struct {
	TrackingNumber string    `json:"trackingNumber"`
	CostUSD        float64   `json:"costUsd"`
	Simulated      bool      `json:"simulated"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// Service sends activation emails and submits certified letters.
type Service struct {
	email     EmailSender
	fromEmail string
	certified config.IntegrationConfig
	logger    logger.Logger
}

func NewService(email EmailSender, integrations config.IntegrationConfig, log logger.Logger) *Service {
	return &Service{
		email:     email,
		fromEmail: integrations.AWS.SES.FromEmail,
		certified: integrations,
		logger:    log.With(map[string]interface{}{"component": "mailer"}),
	}
}

// SendActivationEmail delivers the account-activation link to a new
// client.
func (s *Service) SendActivationEmail(ctx context.Context, to, name, activationURL string) error {
	if s.email == nil {
		s.logger.Warn("email sending disabled, activation link not delivered", map[string]interface{}{
			"to": to,
		})
		return nil
	}

	subject := "Activate your CreditFlow account"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour credit analysis is ready. Activate your account to view it:\n\n%s\n\nThis link expires in 48 hours.\n",
		name, activationURL,
	)

	messageID, err := s.email.SendSimpleEmail(ctx, s.fromEmail, to, subject, body)
	if err != nil {
		return &errors.StandardError{
			Code:      errors.ErrCodeEmailSendFailed,
			Message:   "failed to send activation email",
			Details:   err.Error(),
			Retryable: true,
			Timestamp: time.Now().UTC(),
		}
	}

	s.logger.Info("activation email sent", map[string]interface{}{
		"to":        to,
		"messageId": messageID,
	})
	return nil
}

// SubmitCertifiedLetter queues one letter for certified mailing. The
// current implementation simulates the vendor call: it assigns a tracking
// number and records the cost without printing anything.
func (s *Service) SubmitCertifiedLetter(ctx context.Context, letter *Letter) (*Submission, error) {
	if letter.RecipientName == "" || letter.RecipientAddress == "" {
		metrics.CertifiedLettersSubmitted.WithLabelValues("rejected").Inc()
		return nil, errors.NewMailSendError(fmt.Errorf("recipient name and address are required"))
	}
	if letter.Body == "" {
		metrics.CertifiedLettersSubmitted.WithLabelValues("rejected").Inc()
		return nil, errors.NewMailSendError(fmt.Errorf("letter body is empty"))
	}

	submission := &Submission{
		TrackingNumber: "SIM-" + uuid.NewString(),
		CostUSD:        s.certified.CertifiedMail.LetterCost,
		Simulated:      true,
		SubmittedAt:    time.Now().UTC(),
	}

	metrics.CertifiedLettersSubmitted.WithLabelValues("simulated").Inc()
	s.logger.Info("certified letter submitted (simulated)", map[string]interface{}{
		"recipient":      letter.RecipientName,
		"trackingNumber": submission.TrackingNumber,
		"costUsd":        submission.CostUSD,
	})
	return submission, nil
}
