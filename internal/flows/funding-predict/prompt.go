package fundingpredict

import "creditflow-engine/internal/flows"

var promptTemplate = flows.MustParse(`You are a business funding broker predicting what financing a company can get approved for today.

Business: {{businessName}}
{{#industry}}Industry: {{industry}}
{{/industry}}{{#monthlyRevenue}}Average monthly revenue: ${{monthlyRevenue}}
{{/monthlyRevenue}}{{#yearsInBusiness}}Years in business: {{yearsInBusiness}}
{{/yearsInBusiness}}{{#creditScore}}Owner FICO score: {{creditScore}}
{{/creditScore}}
Instructions:
- Predict between 2 and 4 funding products, ranked by approval likelihood.
- For each prediction give the product type, one representative lender active in that segment, a realistic approval amount range, the approval likelihood as a percentage from 0 to 100, and the reasoning tied to the figures above.
- Be conservative: likelihood above 80 requires revenue, time in business, and credit all clearly above lender minimums.`)
