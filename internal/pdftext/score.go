package pdftext

import "strings"

// sectionMarkers are phrases that name the investment section or its close
// relatives. Each distinct marker present on a page is worth 5 points.
var sectionMarkers = []string{
	"investment section",
	"report from the chief investment officer",
	"chief investment officer",
	"report of the cio",
	"investment report",
	"investment overview",
	"asset allocation",
	"investment policy",
	"investment consultant",
	"investment performance",
}

// secondaryKeywords is the broader allocation/consultant/manager vocabulary.
// Each distinct keyword present is worth 1 point.
var secondaryKeywords = []string{
	"asset allocation", "asset class", "target allocation", "actual allocation",
	"private equity", "private markets", "real estate", "real assets",
	"hedge fund", "absolute return", "fixed income", "public equity",
	"investment policy", "investment strategy", "investment philosophy",
	"chief investment officer", "cio", "investment staff", "investment team",
	"consultant", "verus", "nepc", "callan", "mercer", "cambridge",
	"commitment", "committed", "co-invest", "coinvest", "direct investment",
	"manager", "fund commitment", "private credit", "infrastructure",
	"emerging manager", "diverse manager", "risk parity", "commodities",
	"performance", "benchmark", "return", "allocation percentage",
	"board of trustees", "executive director", "fiduciary",
}

// ScorePage rates a page's investment relevance from weighted keyword hits.
// The score is 5 per distinct section marker plus 1 per distinct secondary
// keyword; non-negative, 0 for empty text.
func ScorePage(text string) int {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)
	score := 0
	for _, marker := range sectionMarkers {
		if strings.Contains(lower, marker) {
			score += 5
		}
	}
	for _, kw := range secondaryKeywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}
