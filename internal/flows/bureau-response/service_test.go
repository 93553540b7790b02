package bureauresponse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditflow-engine/internal/common/errors"
	"creditflow-engine/internal/common/logger"
	"creditflow-engine/internal/flows"
)

type stubGenerator struct {
	response map[string]interface{}
}

func (g *stubGenerator) Generate(ctx context.Context, req *flows.GenerateRequest) (map[string]interface{}, error) {
	return g.response, nil
}

func newService(t *testing.T, gen *stubGenerator) *Service {
	log := logger.NewTestLogger(t)
	return NewService(flows.NewInvoker(gen, log), log)
}

func validInput() *Input {
	return &Input{
		ResponseLetterDataURI: "data:application/pdf;base64,JVBERi0=",
		BureauName:            "Equifax",
	}
}

func response(outcome string) map[string]interface{} {
	return map[string]interface{}{
		"outcome":  outcome,
		"summary":  "The bureau removed the disputed account.",
		"nextStep": "Pull a fresh report in 30 days to confirm.",
	}
}

func TestExecute_EveryValidOutcome(t *testing.T) {
	for _, outcome := range ValidOutcomes {
		t.Run(outcome, func(t *testing.T) {
			output, err := newService(t, &stubGenerator{response: response(outcome)}).
				Execute(context.Background(), validInput())

			require.NoError(t, err)
			assert.Equal(t, Outcome(outcome), output.Outcome)
		})
	}
}

func TestExecute_InvalidOutcomeRejected(t *testing.T) {
	for _, outcome := range []string{"escalated", "DELETED", ""} {
		_, err := newService(t, &stubGenerator{response: response(outcome)}).
			Execute(context.Background(), validInput())

		require.Error(t, err, "outcome %q", outcome)
		assert.True(t, errors.HasCode(err, errors.ErrCodeOutputSchemaMismatch))
	}
}

func TestExecute_RequiresDataURI(t *testing.T) {
	_, err := newService(t, &stubGenerator{response: response("deleted")}).
		Execute(context.Background(), &Input{ResponseLetterDataURI: "https://example.com/letter.pdf"})

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
