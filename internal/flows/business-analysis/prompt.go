package businessanalysis

import "creditflow-engine/internal/flows"

// The fundability checklist is embedded verbatim so scoring stays stable
// across model versions.
var promptTemplate = flows.MustParse(`You are a business funding advisor assessing how fundable a company is.

Business: {{businessName}}
{{#state}}State of registration: {{state}}
{{/state}}Attached business credit report: {{media:reportDataUri}}

Score the business 0-100 against this fundability checklist, weighting each item equally:
1. Entity age over 2 years
2. D&B PAYDEX score of 80 or higher
3. At least 5 reporting tradelines
4. No open derogatory filings (liens, judgments, bankruptcies)
5. Business bank account with consistent deposits
6. Matching legal name, address, and phone across bureaus and registries
7. Industry not on high-risk lists
8. Experian Intelliscore of 76 or higher

Instructions:
- Extract the D&B PAYDEX, Experian Intelliscore, and Equifax Business scores if the report contains them; return null for any score the report does not carry, and add a risk factor naming the missing score.
- Assign a letter grade: A (90-100), B (80-89), C (70-79), D (60-69), F (below 60). Exactly one character.
- List every risk factor you can substantiate from the report.
- Produce an action plan of 3 to 5 steps, most impactful first.`)
