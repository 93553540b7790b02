package disputeletter

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
	response   map[string]interface{}
	lastPrompt string
	lastMedia  []flows.MediaPart
}

func (g *stubGenerator) Generate(ctx context.Context, req *flows.GenerateRequest) (map[string]interface{}, error) {
	g.lastPrompt = req.Prompt
	g.lastMedia = req.Media
	return g.response, nil
}

func newService(t *testing.T, gen *stubGenerator) *Service {
	log := logger.NewTestLogger(t)
	return NewService(flows.NewInvoker(gen, log), log)
}

func validInput() *Input {
	return &Input{
		ClientName:          "Jane Doe",
		ClientEmail:         "jane@x.com",
		DisputeReason:       "incorrect late payment",
		CreditReportDataURI: "data:application/pdf;base64,JVBERi0=",
	}
}

func TestExecute_GeneratesLetters(t *testing.T) {
	gen := &stubGenerator{response: map[string]interface{}{
		"equifaxLetter":    "Dear Equifax...",
		"experianLetter":   "Dear Experian...",
		"transunionLetter": "",
	}}

	output, err := newService(t, gen).Execute(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, "Dear Equifax...", output.EquifaxLetter)
	assert.Contains(t, gen.lastPrompt, "Jane Doe")
	assert.Contains(t, gen.lastPrompt, "incorrect late payment")
	// The report travels as an attachment, not inline text.
	require.Len(t, gen.lastMedia, 1)
	assert.Equal(t, "application/pdf", gen.lastMedia[0].MIMEType)
}

func TestExecute_InvalidEmailRejectedBeforeBackend(t *testing.T) {
	gen := &stubGenerator{response: map[string]interface{}{}}
	input := validInput()
	input.ClientEmail = "not-an-email"

	_, err := newService(t, gen).Execute(context.Background(), input)

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Empty(t, gen.lastPrompt)
}

func TestExecute_MissingLetterFieldRejected(t *testing.T) {
	gen := &stubGenerator{response: map[string]interface{}{
		"equifaxLetter":  "Dear Equifax...",
		"experianLetter": "Dear Experian...",
	}}

	_, err := newService(t, gen).Execute(context.Background(), validInput())

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeOutputSchemaMismatch))
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		name   string
		output Output
		want   string
	}{
		{"equifax first", Output{EquifaxLetter: "eq", ExperianLetter: "ex"}, "eq"},
		{"skips blank equifax", Output{EquifaxLetter: "  ", ExperianLetter: "ex"}, "ex"},
		{"transunion only", Output{TransunionLetter: "tu"}, "tu"},
		{"all empty", Output{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.output.FirstNonEmpty())
		})
	}
}
