package creditanalysis

import "creditflow-engine/internal/flows"

var promptTemplate = flows.MustParse(`You are a credit repair analyst reviewing a consumer credit report.

Attached report: {{media:creditReportDataUri}}

Instructions:
- Summarize the profile in plain language: score range, utilization, derogatory marks, collections, inquiries, and age of accounts.
- Produce an ordered list of concrete action items, most impactful first. Each item must name the specific account or behavior it targets.
- Do not invent accounts that are not on the report.`)
