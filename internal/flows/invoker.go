package flows

import (
	"context"
	"strings"
	"time"

	"creditflow-engine/internal/common/errors"
	"creditflow-engine/internal/common/logger"
	"creditflow-engine/internal/common/metrics"
	"creditflow-engine/internal/common/observability"
	"creditflow-engine/internal/common/validation"
)

// GenerateRequest is the single call issued to the AI backend for one
// invocation: the rendered prompt, any file attachments, and the declared
// output shape the response must conform to.
type GenerateRequest struct {
	Operation string
	Prompt    string
	Media     []MediaPart
	Output    validation.JSONSchema
}

// Generator is the generative-AI backend boundary. Implementations send
// one blocking request and return the parsed structured response, or an
// error when no usable output was produced. No streaming, no partial
// output.
type Generator interface {
	Generate(ctx context.Context, req *GenerateRequest) (map[string]interface{}, error)
}

// Invoker executes one operation against the backend and produces a
// schema-validated result. Invocations are independent and stateless;
// concurrent invocations of the same or different operations do not
// interfere.
type Invoker struct {
	generator Generator
	logger    logger.Logger
	obs       *observability.Observability
}

func NewInvoker(generator Generator, log logger.Logger) *Invoker {
	return &Invoker{
		generator: generator,
		logger:    log.With(map[string]interface{}{"component": "flow-invoker"}),
	}
}

// WithObservability attaches an OTel recorder; nil is tolerated everywhere.
func (inv *Invoker) WithObservability(obs *observability.Observability) *Invoker {
	inv.obs = obs
	return inv
}

// Invoke runs: validate input -> render prompt -> backend call -> validate
// output. There is no retry and no partial-result handling; a
// non-conformant or empty response fails the invocation as a whole.
func (inv *Invoker) Invoke(ctx context.Context, contract *Contract, tmpl *Template, input map[string]interface{}) (map[string]interface{}, error) {
	start := time.Now()

	output, err := inv.invoke(ctx, contract, tmpl, input)

	duration := time.Since(start)
	metrics.FlowInvocationDuration.WithLabelValues(contract.Operation).Observe(duration.Seconds())
	if inv.obs != nil {
		status := "ok"
		if err != nil {
			status = string(errors.AsStandard(err).Code)
		}
		inv.obs.RecordInvocation(ctx, contract.Operation, status, duration)
	}

	if err != nil {
		stdErr := errors.AsStandard(err)
		metrics.FlowInvocationsFailed.WithLabelValues(contract.Operation, string(stdErr.Code)).Inc()
		inv.logger.Error("flow invocation failed", map[string]interface{}{
			"operation": contract.Operation,
			"errorCode": string(stdErr.Code),
			"details":   stdErr.Details,
		})
		return nil, err
	}

	metrics.FlowInvocationsCompleted.WithLabelValues(contract.Operation).Inc()
	inv.logger.Info("flow invocation completed", map[string]interface{}{
		"operation":  contract.Operation,
		"durationMs": duration.Milliseconds(),
	})
	return output, nil
}

func (inv *Invoker) invoke(ctx context.Context, contract *Contract, tmpl *Template, input map[string]interface{}) (map[string]interface{}, error) {
	if result := contract.ValidateInput(input); !result.Valid {
		first := result.Errors[0]
		stdErr := errors.NewValidationError(first.Field, first.Message)
		stdErr.Details = strings.Join(result.GetErrorMessages(), "; ")
		return nil, stdErr
	}

	rendered, err := tmpl.Render(input)
	if err != nil {
		return nil, err
	}

	output, err := inv.generator.Generate(ctx, &GenerateRequest{
		Operation: contract.Operation,
		Prompt:    rendered.Text,
		Media:     rendered.Media,
		Output:    contract.Output,
	})
	if err != nil {
		return nil, errors.NewGenerationFailedError(contract.Operation, err)
	}
	if output == nil {
		return nil, errors.NewGenerationFailedError(contract.Operation, nil)
	}

	if result := contract.ValidateOutput(output); !result.Valid {
		return nil, errors.NewOutputSchemaMismatchError(contract.Operation, result.GetErrorMessages())
	}

	return output, nil
}
