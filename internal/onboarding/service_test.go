package onboarding

import (
	"context"
	"testing"

	"creditflow-engine/internal/common/config"
	"creditflow-engine/internal/common/crm"
	"creditflow-engine/internal/common/errors"
	"creditflow-engine/internal/common/logger"
	businessanalysis "creditflow-engine/internal/flows/business-analysis"
	creditanalysis "creditflow-engine/internal/flows/credit-analysis"
	disputeletter "creditflow-engine/internal/flows/dispute-letter"
	"creditflow-engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Collaborators
// ==========================

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Execute(ctx context.Context, input *creditanalysis.Input) (*creditanalysis.Output, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*creditanalysis.Output), args.Error(1)
}

type MockLetters struct {
	mock.Mock
}

func (m *MockLetters) Execute(ctx context.Context, input *disputeletter.Input) (*disputeletter.Output, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*disputeletter.Output), args.Error(1)
}

type MockBusiness struct {
	mock.Mock
}

func (m *MockBusiness) Execute(ctx context.Context, input *businessanalysis.Input) (*businessanalysis.Output, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*businessanalysis.Output), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) AddToWorkflow(ctx context.Context, workflowID string, contact *crm.Contact) (*crm.EnrollmentResult, error) {
	args := m.Called(ctx, workflowID, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.EnrollmentResult), args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateClient(ctx context.Context, client *models.ClientRecord) (string, error) {
	args := m.Called(ctx, client)
	return args.String(0), args.Error(1)
}

func (m *MockStore) FindClientByEmail(ctx context.Context, email string) (*models.ClientRecord, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientRecord), args.Error(1)
}

func (m *MockStore) FindClientByID(ctx context.Context, id string) (*models.ClientRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientRecord), args.Error(1)
}

func (m *MockStore) SaveAnalysis(ctx context.Context, clientID string, analysisType models.AnalysisType, payload interface{}) (string, error) {
	args := m.Called(ctx, clientID, analysisType, payload)
	return args.String(0), args.Error(1)
}

func (m *MockStore) LatestAnalysisForClient(ctx context.Context, clientID string, analysisType models.AnalysisType) (*models.AnalysisRecord, error) {
	args := m.Called(ctx, clientID, analysisType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisRecord), args.Error(1)
}

func (m *MockStore) LinkIdentity(ctx context.Context, clientID, identityID string) error {
	args := m.Called(ctx, clientID, identityID)
	return args.Error(0)
}

func (m *MockStore) UnlockTool(ctx context.Context, clientID, tool string) error {
	args := m.Called(ctx, clientID, tool)
	return args.Error(0)
}

// ==========================
// Test Helpers
// ==========================

type fixture struct {
	analyzer *MockAnalyzer
	letters  *MockLetters
	business *MockBusiness
	notifier *MockNotifier
	store    *MockStore
	service  *Service
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		analyzer: &MockAnalyzer{},
		letters:  &MockLetters{},
		business: &MockBusiness{},
		notifier: &MockNotifier{},
		store:    &MockStore{},
	}
	f.service = NewService(
		f.analyzer, f.letters, f.business, f.notifier, f.store,
		config.WorkflowsConfig{
			ClientWelcome:     "wf-client-welcome",
			AffiliateNotify:   "wf-affiliate-notify",
			BusinessWelcome:   "wf-business-welcome",
			BusinessAffiliate: "wf-business-affiliate",
		},
		logger.NewTestLogger(t),
	)
	return f
}

func (f *fixture) expectNewClient(email, id string) {
	f.store.On("FindClientByEmail", mock.Anything, email).Return(nil, nil)
	f.store.On("CreateClient", mock.Anything, mock.Anything).Return(id, nil)
	f.store.On("SaveAnalysis", mock.Anything, id, mock.Anything, mock.Anything).Return("analysis-1", nil)
}

func validClientInput() *ClientInput {
	return &ClientInput{
		ClientName:          "Jane Doe",
		ClientEmail:         "jane@x.com",
		DisputeReason:       "incorrect late payment",
		CreditReportDataURI: "data:application/pdf;base64,JVBERi0=",
		AffiliateID:         "none",
	}
}

func validAnalysis() *creditanalysis.Output {
	return &creditanalysis.Output{
		Summary:     "Two late payments reported in error on the Chase account.",
		ActionItems: []string{"Dispute the Chase late payments with all three bureaus"},
	}
}

func validLetters() *disputeletter.Output {
	return &disputeletter.Output{
		EquifaxLetter:    "Dear Equifax, I am writing to dispute...",
		ExperianLetter:   "Dear Experian, I am writing to dispute...",
		TransunionLetter: "",
	}
}

func validBusinessAnalysis() *businessanalysis.Output {
	dnb := 78.0
	return &businessanalysis.Output{
		FundabilityScore: 72,
		Grade:            "B",
		RiskFactors:      []string{"No Experian Intelliscore on file"},
		ActionPlan:       []string{"Open a business credit card", "Register with Experian", "Add two net-30 vendor accounts"},
		DNBScore:         &dnb,
	}
}

func enrolled() *crm.EnrollmentResult {
	return &crm.EnrollmentResult{Success: true, Message: "enrolled"}
}

// ==========================
// Personal Onboarding
// ==========================

func TestOnboardClient_SuccessWithoutAffiliate(t *testing.T) {
	f := newFixture(t)
	f.expectNewClient("jane@x.com", "client-1")
	f.analyzer.On("Execute", mock.Anything, mock.Anything).Return(validAnalysis(), nil)
	f.letters.On("Execute", mock.Anything, mock.Anything).Return(validLetters(), nil)
	f.notifier.On("AddToWorkflow", mock.Anything, "wf-client-welcome", mock.Anything).Return(enrolled(), nil)

	result, err := f.service.OnboardClient(context.Background(), validClientInput())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.GeneratedLetter)
	require.NotNil(t, result.Analysis)
	assert.NotEmpty(t, result.Analysis.Summary)
	assert.Equal(t, "client-1", result.ClientID)

	// Affiliate id "none" means exactly one notification: the welcome.
	f.notifier.AssertNumberOfCalls(t, "AddToWorkflow", 1)
	f.notifier.AssertNotCalled(t, "AddToWorkflow", mock.Anything, "wf-affiliate-notify", mock.Anything)
}

func TestOnboardClient_AffiliateTriggersSecondNotification(t *testing.T) {
	f := newFixture(t)
	f.expectNewClient("jane@x.com", "client-1")
	f.analyzer.On("Execute", mock.Anything, mock.Anything).Return(validAnalysis(), nil)
	f.letters.On("Execute", mock.Anything, mock.Anything).Return(validLetters(), nil)
	f.notifier.On("AddToWorkflow", mock.Anything, "wf-client-welcome", mock.Anything).Return(enrolled(), nil)
	f.notifier.On("AddToWorkflow", mock.Anything, "wf-affiliate-notify", mock.MatchedBy(func(c *crm.Contact) bool {
		return c.CustomFields["affiliateId"] == "aff-42" &&
			c.CustomFields["leadName"] == "Jane Doe" &&
			c.CustomFields["leadEmail"] == "jane@x.com"
	})).Return(enrolled(), nil)

	input := validClientInput()
	input.AffiliateID = "aff-42"

	result, err := f.service.OnboardClient(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, result.Success)
	f.notifier.AssertNumberOfCalls(t, "AddToWorkflow", 2)
}

func TestOnboardClient_AnalysisFailureSkipsCRM(t *testing.T) {
	f := newFixture(t)
	f.store.On("FindClientByEmail", mock.Anything, "jane@x.com").Return(nil, nil)
	f.store.On("CreateClient", mock.Anything, mock.Anything).Return("client-1", nil)
	f.analyzer.On("Execute", mock.Anything, mock.Anything).
		Return(nil, errors.NewGenerationFailedError("analyze-credit-profile", nil))

	result, err := f.service.OnboardClient(context.Background(), validClientInput())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
	f.letters.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "AddToWorkflow", mock.Anything, mock.Anything, mock.Anything)
	f.store.AssertNotCalled(t, "SaveAnalysis", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOnboardClient_LetterFailureSkipsCRM(t *testing.T) {
	f := newFixture(t)
	f.store.On("FindClientByEmail", mock.Anything, "jane@x.com").Return(nil, nil)
	f.store.On("CreateClient", mock.Anything, mock.Anything).Return("client-1", nil)
	f.analyzer.On("Execute", mock.Anything, mock.Anything).Return(validAnalysis(), nil)
	f.letters.On("Execute", mock.Anything, mock.Anything).
		Return(nil, errors.NewGenerationFailedError("generate-dispute-letter", nil))

	input := validClientInput()
	input.AffiliateID = "aff-42"

	result, err := f.service.OnboardClient(context.Background(), input)

	require.NoError(t, err)
	assert.False(t, result.Success)
	f.notifier.AssertNotCalled(t, "AddToWorkflow", mock.Anything, mock.Anything, mock.Anything)
}

func TestOnboardClient_AllLettersEmptyIsFailure(t *testing.T) {
	f := newFixture(t)
	f.store.On("FindClientByEmail", mock.Anything, "jane@x.com").Return(nil, nil)
	f.store.On("CreateClient", mock.Anything, mock.Anything).Return("client-1", nil)
	f.analyzer.On("Execute", mock.Anything, mock.Anything).Return(validAnalysis(), nil)
	f.letters.On("Execute", mock.Anything, mock.Anything).Return(&disputeletter.Output{}, nil)

	result, err := f.service.OnboardClient(context.Background(), validClientInput())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "check the uploaded file")
	f.notifier.AssertNotCalled(t, "AddToWorkflow", mock.Anything, mock.Anything, mock.Anything)
}

func TestOnboardClient_OrderingAnalysisBeforeLetters(t *testing.T) {
	f := newFixture(t)
	f.expectNewClient("jane@x.com", "client-1")

	var order []string
	f.analyzer.On("Execute", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		order = append(order, "analysis")
	}).Return(validAnalysis(), nil)
	f.letters.On("Execute", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		order = append(order, "letters")
	}).Return(validLetters(), nil)
	f.notifier.On("AddToWorkflow", mock.Anything, mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		order = append(order, "crm")
	}).Return(enrolled(), nil)

	_, err := f.service.OnboardClient(context.Background(), validClientInput())

	require.NoError(t, err)
	require.Equal(t, []string{"analysis", "letters", "crm"}, order)
}

func TestOnboardClient_CRMFailureDoesNotChangeOutcome(t *testing.T) {
	f := newFixture(t)
	f.expectNewClient("jane@x.com", "client-1")
	f.analyzer.On("Execute", mock.Anything, mock.Anything).Return(validAnalysis(), nil)
	f.letters.On("Execute", mock.Anything, mock.Anything).Return(validLetters(), nil)
	f.notifier.On("AddToWorkflow", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	result, err := f.service.OnboardClient(context.Background(), validClientInput())

	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestOnboardClient_ExistingClientNotRecreated(t *testing.T) {
	f := newFixture(t)
	f.store.On("FindClientByEmail", mock.Anything, "jane@x.com").
		Return(&models.ClientRecord{ID: "client-7", Email: "jane@x.com"}, nil)
	f.store.On("SaveAnalysis", mock.Anything, "client-7", mock.Anything, mock.Anything).Return("analysis-1", nil)
	f.analyzer.On("Execute", mock.Anything, mock.Anything).Return(validAnalysis(), nil)
	f.letters.On("Execute", mock.Anything, mock.Anything).Return(validLetters(), nil)
	f.notifier.On("AddToWorkflow", mock.Anything, mock.Anything, mock.Anything).Return(enrolled(), nil)

	result, err := f.service.OnboardClient(context.Background(), validClientInput())

	require.NoError(t, err)
	assert.Equal(t, "client-7", result.ClientID)
	f.store.AssertNotCalled(t, "CreateClient", mock.Anything, mock.Anything)
}

// ==========================
// Business Onboarding
// ==========================

func validBusinessInput() *BusinessInput {
	return &BusinessInput{
		BusinessName:  "Acme Logistics LLC",
		ContactName:   "Sam Lee",
		ContactEmail:  "sam@acme.example",
		State:         "TX",
		ReportDataURI: "data:application/pdf;base64,JVBERi0=",
		AffiliateID:   "none",
	}
}

func TestOnboardBusiness_SuccessEnrollsWithGradeAndScore(t *testing.T) {
	f := newFixture(t)
	f.expectNewClient("sam@acme.example", "client-2")
	f.business.On("Execute", mock.Anything, mock.Anything).Return(validBusinessAnalysis(), nil)
	f.notifier.On("AddToWorkflow", mock.Anything, "wf-business-welcome", mock.MatchedBy(func(c *crm.Contact) bool {
		return c.CustomFields["fundabilityGrade"] == "B" &&
			c.CustomFields["fundabilityScore"] == "72" &&
			c.CustomFields["businessName"] == "Acme Logistics LLC"
	})).Return(enrolled(), nil)

	result, err := f.service.OnboardBusiness(context.Background(), validBusinessInput())

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.BusinessAnalysis)
	assert.Equal(t, "B", result.BusinessAnalysis.Grade)
	assert.InDelta(t, 72, result.BusinessAnalysis.FundabilityScore, 0.001)
	f.notifier.AssertNumberOfCalls(t, "AddToWorkflow", 1)
}

func TestOnboardBusiness_AffiliateTriggersSecondNotification(t *testing.T) {
	f := newFixture(t)
	f.expectNewClient("sam@acme.example", "client-2")
	f.business.On("Execute", mock.Anything, mock.Anything).Return(validBusinessAnalysis(), nil)
	f.notifier.On("AddToWorkflow", mock.Anything, "wf-business-welcome", mock.Anything).Return(enrolled(), nil)
	f.notifier.On("AddToWorkflow", mock.Anything, "wf-business-affiliate", mock.Anything).Return(enrolled(), nil)

	input := validBusinessInput()
	input.AffiliateID = "partner-9"

	result, err := f.service.OnboardBusiness(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, result.Success)
	f.notifier.AssertNumberOfCalls(t, "AddToWorkflow", 2)
}

func TestOnboardBusiness_AnalysisFailureSkipsCRM(t *testing.T) {
	f := newFixture(t)
	f.store.On("FindClientByEmail", mock.Anything, "sam@acme.example").Return(nil, nil)
	f.store.On("CreateClient", mock.Anything, mock.Anything).Return("client-2", nil)
	f.business.On("Execute", mock.Anything, mock.Anything).
		Return(nil, errors.NewGenerationFailedError("analyze-business-credit", nil))

	result, err := f.service.OnboardBusiness(context.Background(), validBusinessInput())

	require.NoError(t, err)
	assert.False(t, result.Success)
	f.notifier.AssertNotCalled(t, "AddToWorkflow", mock.Anything, mock.Anything, mock.Anything)
}

func TestOnboardBusiness_MissingBureauScoresPassThrough(t *testing.T) {
	f := newFixture(t)
	f.expectNewClient("sam@acme.example", "client-2")

	analysis := validBusinessAnalysis()
	analysis.DNBScore = nil
	analysis.ExperianScore = nil
	analysis.EquifaxScore = nil
	analysis.RiskFactors = []string{"No bureau scores found in the uploaded report"}
	f.business.On("Execute", mock.Anything, mock.Anything).Return(analysis, nil)
	f.notifier.On("AddToWorkflow", mock.Anything, mock.Anything, mock.Anything).Return(enrolled(), nil)

	result, err := f.service.OnboardBusiness(context.Background(), validBusinessInput())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Nil(t, result.BusinessAnalysis.DNBScore)
	assert.Nil(t, result.BusinessAnalysis.ExperianScore)
	assert.Nil(t, result.BusinessAnalysis.EquifaxScore)
	assert.NotEmpty(t, result.BusinessAnalysis.RiskFactors)
}

// ==========================
// Helpers
// ==========================

func TestNameSplitting(t *testing.T) {
	assert.Equal(t, "Jane", firstName("Jane Doe"))
	assert.Equal(t, "Doe", lastName("Jane Doe"))
	assert.Equal(t, "Mary Jo", firstName("Mary Jo Smith"))
	assert.Equal(t, "Smith", lastName("Mary Jo Smith"))
	assert.Equal(t, "Cher", firstName("Cher"))
	assert.Equal(t, "", lastName("Cher"))
}

// ==========================
// Activation Link
// ==========================

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(ctx context.Context, clientID string) (string, error) {
	args := m.Called(ctx, clientID)
	return args.String(0), args.Error(1)
}

type MockActivationMailer struct {
	mock.Mock
}

func (m *MockActivationMailer) SendActivationEmail(ctx context.Context, to, name, activationURL string) error {
	args := m.Called(ctx, to, name, activationURL)
	return args.Error(0)
}

func TestOnboardClient_SendsActivationLink(t *testing.T) {
	f := newFixture(t)
	issuer := &MockTokenIssuer{}
	mailer := &MockActivationMailer{}
	f.service.WithActivation(issuer, mailer, "https://app.example/activate")

	f.expectNewClient("jane@x.com", "client-1")
	f.analyzer.On("Execute", mock.Anything, mock.Anything).Return(validAnalysis(), nil)
	f.letters.On("Execute", mock.Anything, mock.Anything).Return(validLetters(), nil)
	f.notifier.On("AddToWorkflow", mock.Anything, mock.Anything, mock.Anything).Return(enrolled(), nil)
	issuer.On("Issue", mock.Anything, "client-1").Return("tok-123", nil)
	mailer.On("SendActivationEmail", mock.Anything, "jane@x.com", "Jane Doe",
		"https://app.example/activate?token=tok-123").Return(nil)

	result, err := f.service.OnboardClient(context.Background(), validClientInput())

	require.NoError(t, err)
	assert.True(t, result.Success)
	issuer.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestOnboardClient_ActivationFailureDoesNotChangeOutcome(t *testing.T) {
	f := newFixture(t)
	issuer := &MockTokenIssuer{}
	mailer := &MockActivationMailer{}
	f.service.WithActivation(issuer, mailer, "https://app.example/activate")

	f.expectNewClient("jane@x.com", "client-1")
	f.analyzer.On("Execute", mock.Anything, mock.Anything).Return(validAnalysis(), nil)
	f.letters.On("Execute", mock.Anything, mock.Anything).Return(validLetters(), nil)
	f.notifier.On("AddToWorkflow", mock.Anything, mock.Anything, mock.Anything).Return(enrolled(), nil)
	issuer.On("Issue", mock.Anything, "client-1").Return("", assert.AnError)

	result, err := f.service.OnboardClient(context.Background(), validClientInput())

	require.NoError(t, err)
	assert.True(t, result.Success)
	mailer.AssertNotCalled(t, "SendActivationEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOnboardClient_NoActivationStepSkipsQuietly(t *testing.T) {
	f := newFixture(t)
	f.expectNewClient("jane@x.com", "client-1")
	f.analyzer.On("Execute", mock.Anything, mock.Anything).Return(validAnalysis(), nil)
	f.letters.On("Execute", mock.Anything, mock.Anything).Return(validLetters(), nil)
	f.notifier.On("AddToWorkflow", mock.Anything, mock.Anything, mock.Anything).Return(enrolled(), nil)

	result, err := f.service.OnboardClient(context.Background(), validClientInput())

	require.NoError(t, err)
	assert.True(t, result.Success)
}
