package bureauresponse

// Outcome is the bureau's disposition of a dispute, read from their
// response letter.
type Outcome string

const (
	OutcomeDeleted            Outcome = "deleted"
	OutcomeRepaired           Outcome = "repaired"
	OutcomeVerified           Outcome = "verified"
	OutcomeStalled            Outcome = "stalled"
	OutcomeRejected           Outcome = "rejected"
	OutcomeInformationRequest Outcome = "information_request"
)

// ValidOutcomes is the full enumeration, in schema order.
var ValidOutcomes = []string{
	string(OutcomeDeleted),
	string(OutcomeRepaired),
	string(OutcomeVerified),
	string(OutcomeStalled),
	string(OutcomeRejected),
	string(OutcomeInformationRequest),
}

type Input struct {
	ResponseLetterDataURI string `json:"responseLetterDataUri"`
	BureauName            string `json:"bureauName,omitempty"`
}

type Output struct {
	Outcome  Outcome `json:"outcome"`
	Summary  string  `json:"summary"`
	NextStep string  `json:"nextStep"`
}
