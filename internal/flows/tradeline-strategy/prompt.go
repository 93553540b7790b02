package tradelinestrategy

import "creditflow-engine/internal/flows"

var promptTemplate = flows.MustParse(`You are a credit building strategist recommending tradelines.

{{#creditSummary}}Client credit profile:
{{creditSummary}}
{{/creditSummary}}{{#isBusiness}}The client is building BUSINESS credit. Include business categories: Net-30 vendor accounts (examples: Uline, Grainger, Quill), business fuel cards, business credit cards, and business lines of credit.
{{/isBusiness}}
Instructions:
- Group recommendations by category. For personal credit use categories such as secured credit cards, credit builder loans, authorized user tradelines, and rent/utility reporting services.
- Mark each category with businessOnly true or false.
- Only mark a category businessOnly when it requires an EIN or registered entity.
- Recommend 2-4 real, currently available products per category with a one-line description each.
- Order categories from easiest approval to hardest.`)
