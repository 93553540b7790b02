package bureauresponse

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

// Execute classifies one bureau response letter.
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

	s.logger.Info("bureau response analyzed", map[string]interface{}{
		"outcome": string(output.Outcome),
	})
	return &output, nil
}
