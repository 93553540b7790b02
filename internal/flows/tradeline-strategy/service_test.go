package tradelinestrategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func mixedCategories() map[string]interface{} {
	return map[string]interface{}{
		"categories": []interface{}{
			map[string]interface{}{
				"category":     "Secured credit cards",
				"businessOnly": false,
				"products": []interface{}{
					map[string]interface{}{"name": "Example Secured Visa", "description": "Low deposit"},
				},
			},
			map[string]interface{}{
				"category":     "Net-30 vendor accounts",
				"businessOnly": true,
				"products": []interface{}{
					map[string]interface{}{"name": "Example Office Supply", "description": "Reports to D&B"},
				},
			},
		},
	}
}

func TestExecute_PersonalContextFiltersBusinessOnly(t *testing.T) {
	output, err := newService(t, &stubGenerator{response: mixedCategories()}).
		Execute(context.Background(), &Input{CreditSummary: "thin file", IsBusiness: false})

	require.NoError(t, err)
	require.Len(t, output.Categories, 1)
	assert.Equal(t, "Secured credit cards", output.Categories[0].Category)
}

func TestExecute_BusinessContextKeepsAllCategories(t *testing.T) {
	output, err := newService(t, &stubGenerator{response: mixedCategories()}).
		Execute(context.Background(), &Input{CreditSummary: "thin file", IsBusiness: true})

	require.NoError(t, err)
	assert.Len(t, output.Categories, 2)
}

func TestExecute_EmptyInputStillRuns(t *testing.T) {
	// Both input fields are optional; the prompt's conditional sections
	// tolerate their absence.
	output, err := newService(t, &stubGenerator{response: mixedCategories()}).
		Execute(context.Background(), &Input{})

	require.NoError(t, err)
	require.Len(t, output.Categories, 1)
}
