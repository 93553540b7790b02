package bureauresponse

import "creditflow-engine/internal/flows"

var promptTemplate = flows.MustParse(`You are a credit dispute specialist reading a credit bureau's written response to a consumer dispute.

{{#bureauName}}The letter is from: {{bureauName}}
{{/bureauName}}Attached response letter: {{media:responseLetterDataUri}}

Classify the outcome as exactly one of:
- deleted: the disputed item was removed
- repaired: the item was corrected but not removed
- verified: the bureau claims the item is accurate as reported
- stalled: the bureau calls the dispute frivolous or says an investigation is already underway
- rejected: the bureau refuses to investigate
- information_request: the bureau asks for identification or more detail before investigating

Then summarize the letter in plain language and state the single best next step for the client (for example: send a method-of-verification request, escalate to the CFPB, supply the requested ID).`)
