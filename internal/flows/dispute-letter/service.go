package disputeletter

import (
	"context"

	"creditflow-engine/internal/common/logger"
	"creditflow-engine/internal/flows"
)

type Service struct {
	invoker  *flows.Invoker
	logger   logger.Logger
	contract *flows.Contract
}

func NewService(invoker *flows.Invoker, log logger.Logger) *Service {
	return &Service{
		invoker:  invoker,
		contract: GetContract(),
		logger:   log.With(map[string]interface{}{"operation": Operation}),
	}
}

// Execute generates the three bureau letters for one dispute request.
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

	s.logger.Info("dispute letters generated", map[string]interface{}{
		"equifax":    output.EquifaxLetter != "",
		"experian":   output.ExperianLetter != "",
		"transunion": output.TransunionLetter != "",
	})
	return &output, nil
}
