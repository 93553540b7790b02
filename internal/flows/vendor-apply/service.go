package vendorapply

import (
	"context"

	"github.com/google/uuid"

	"creditflow-engine/internal/common/logger"
	"creditflow-engine/internal/flows"
)

// Submitter delivers a generated application to the vendor. The production
// wiring uses the simulated submitter; a real fax/email integration slots
// in behind the same interface.
type Submitter interface {
	Submit(ctx context.Context, vendorName, applicationText string) (*SubmissionReceipt, error)
}

type Service struct {
	invoker   *flows.Invoker
	logger    logger.Logger
	contract  *flows.Contract
	submitter Submitter
}

func NewService(invoker *flows.Invoker, submitter Submitter, log logger.Logger) *Service {
	if submitter == nil {
		submitter = &SimulatedSubmitter{logger: log}
	}
	return &Service{
		invoker:   invoker,
		contract:  GetContract(),
		submitter: submitter,
		logger:    log.With(map[string]interface{}{"operation": Operation}),
	}
}

// Execute generates the vendor application and, when generation succeeds,
// submits it through the configured channel.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	in, err := flows.ToMap(input)
	if err != nil {
		return nil, err
	}

	out, err := s.invoker.Invoke(ctx, s.contract, promptTemplate, in)
	if err != nil {
		return nil, err
	}

	var output Output
	if err := flows.FromMap(out, &output); err != nil {
		return nil, err
	}

	if output.Success {
		receipt, err := s.submitter.Submit(ctx, input.VendorName, output.ApplicationText)
		if err != nil {
			// The application itself is still usable; report the delivery
			// problem in the message.
			s.logger.Warn("vendor application submission failed", map[string]interface{}{
				"vendor": input.VendorName,
				"error":  err.Error(),
			})
			output.Message = output.Message + " (automatic submission failed; send manually)"
		} else {
			s.logger.Info("vendor application submitted", map[string]interface{}{
				"vendor":         input.VendorName,
				"confirmationId": receipt.ConfirmationID,
				"channel":        receipt.Channel,
			})
		}
	}

	return &output, nil
}

// SimulatedSubmitter stands in for the vendor's fax/email intake. It only
// logs; nothing leaves the process.
type SimulatedSubmitter struct {
	logger logger.Logger
}

func (s *SimulatedSubmitter) Submit(ctx context.Context, vendorName, applicationText string) (*SubmissionReceipt, error) {
	receipt := &SubmissionReceipt{
		ConfirmationID: uuid.NewString(),
		Channel:        "simulated-fax",
	}
	s.logger.Info("simulated vendor application delivery", map[string]interface{}{
		"vendor":         vendorName,
		"confirmationId": receipt.ConfirmationID,
		"bytes":          len(applicationText),
	})
	return receipt, nil
}
