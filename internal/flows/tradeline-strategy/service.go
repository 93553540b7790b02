package tradelinestrategy

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

// Execute builds the tradeline recommendation grouping. Business-only
// categories are suppressed unless the input says this is a business
// context, regardless of what the backend returned.
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

	if !input.IsBusiness {
		filtered := output.Categories[:0]
		for _, cat := range output.Categories {
			if cat.BusinessOnly {
				continue
			}
			filtered = append(filtered, cat)
		}
		output.Categories = filtered
	}

	s.logger.Info("tradeline strategy generated", map[string]interface{}{
		"categories": len(output.Categories),
		"isBusiness": input.IsBusiness,
	})
	return &output, nil
}
