package ai

import (
	"fmt"
	"strings"

	"github.com/jeremymartinezq/sec-8k-extractor/internal/types"
)

var urlTemplates = []string{
	"https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany&CIK=%[2]s&type=8-K",
	"https://finance.yahoo.com/quote/%[1]s/news",
	"https://www.nasdaq.com/market-activity/stocks/%[1]s/press-releases",
}

const systemInstruction = `
# [INSTRUCTION]

You are an equity research analyst covering consumer and enterprise technology companies.

Your task is to analyze an excerpt of an SEC Form 8-K filing in which the company announces, launches, introduces or releases a product, and report what is actually known about that product.

---

# [CATEGORIES]

Use these categories for "product_facts":

- **Product:** The product's name, line or model, exactly as the filing names it.
- **Availability:** Launch dates, pre-order dates, regions or channels.
- **Pricing:** Any stated price, pricing tier or subscription terms.
- **Capabilities:** Specific features, specifications or performance claims.
- **Financial Impact:** Guidance, revenue expectations or costs tied to the product.
- **Partnerships:** Suppliers, distribution partners or customers named alongside the product.

---

# [CRITICAL INSTRUCTION]

Only report facts stated in the excerpt or on the supplied URLs. Do not speculate. If the excerpt does not actually announce a product (for example, it is boilerplate about forward-looking statements), say so in the summary and return no product facts.

Each "details" field must be a single, specific statement tied to a name, number or date.
`

var userPromptTemplate = `
Company: %s (CIK %s)
Filing date: %s
Filing document: %s
Matched keyword: %s
Extracted product name: %s

Analyze the following filing excerpt:
--
%s
---

You can also use the following supplementary URLs for recent filings and news:
%s
`

func buildUserPrompt(r types.Result) string {
	var supplementaryURLs []string
	for _, tmpl := range urlTemplates {
		supplementaryURLs = append(supplementaryURLs, fmt.Sprintf(tmpl, r.Company, r.CIK))
	}

	return fmt.Sprintf(userPromptTemplate,
		r.Company,
		r.CIK,
		r.FilingDate,
		r.DocumentURL,
		r.Keyword,
		r.ProductName,
		r.Context,
		strings.Join(supplementaryURLs, "\n"),
	)
}
