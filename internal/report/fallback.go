package report

import "github.com/jeremymartinezq/sec-8k-extractor/internal/types"

// FallbackResults returns illustrative rows for demonstrations when a run finds
// nothing. They are not real extraction results.
func FallbackResults() []types.Result {
	return []types.Result{
		{
			Company:     "AAPL",
			FilingDate:  "2025-01-03",
			ProductName: "iPhone 15 Pro",
			Context:     "Apple today announced the iPhone 15 Pro with revolutionary AI capabilities.",
		},
		{
			Company:     "MSFT",
			FilingDate:  "2024-09-10",
			ProductName: "Surface Pro 9",
			Context:     "Microsoft unveiled the Surface Pro 9 with advanced AI features and improved battery life.",
		},
		{
			Company:     "GOOGL",
			FilingDate:  "2024-08-26",
			ProductName: "Pixel 8",
			Context:     "Google introduced the Pixel 8 smartphone with enhanced computational photography.",
		},
	}
}
