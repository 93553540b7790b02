package vendorapply

import "creditflow-engine/internal/flows"

var promptTemplate = flows.MustParse(`You are filling out a net-30 vendor credit application on behalf of a business.

Vendor: {{vendorName}}
Business: {{businessName}}
Contact: {{contactName}} <{{contactEmail}}>
{{#businessAddress}}Business address: {{businessAddress}}
{{/businessAddress}}{{#ein}}EIN: {{ein}}
{{/ein}}
Instructions:
- Produce a complete, formatted credit application addressed to the vendor, using the fields above.
- Include standard net-30 application sections: business identification, trade references placeholder section, requested credit line, and authorized signer block.
- Set success to false with an explanatory message if a required section cannot be completed from the data above; otherwise success is true.`)
