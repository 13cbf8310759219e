package pdftext

import (
	"sort"
	"strings"
)

// PrioritizePDFs orders candidate PDF URLs best-first so that a small fetch
// cap lands on the documents most likely to carry current commitment and
// allocation data. The sort is stable: equally scored URLs keep their
// discovery order.
func PrioritizePDFs(urls []string) []string {
	out := make([]string, len(urls))
	copy(out, urls)
	sort.SliceStable(out, func(i, j int) bool {
		return pdfPriority(out[i]) < pdfPriority(out[j])
	})
	return out
}

// pdfPriority scores a PDF URL by filename heuristics; lower is better.
// Board books beat annual reports beat section excerpts, and recent fiscal
// years beat old ones.
func pdfPriority(rawURL string) int {
	lower := strings.ToLower(rawURL)
	compressed := strings.NewReplacer("-", "", "_", "").Replace(lower)
	score := 100

	switch {
	case containsAny(lower, "fy25", "fy24", "2025", "2024"):
		score -= 50
	case containsAny(lower, "fy23", "2023"):
		score -= 40
	case containsAny(lower, "fy22", "2022"):
		score -= 30
	}

	// Board books carry current commitments and manager changes.
	if strings.Contains(lower, "board") && strings.Contains(lower, "book") {
		score -= 40
	} else if strings.Contains(lower, "board") {
		score -= 25
	}

	// Full annual report books beat isolated sections.
	if strings.Contains(compressed, "annualreportbook") {
		score -= 30
	} else if strings.Contains(lower, "annual") && strings.Contains(lower, "report") {
		score -= 20
	}

	if strings.Contains(lower, "investment") {
		score -= 15
	}
	if containsAny(lower, "cafr", "acfr") {
		score -= 10
	}

	// Partial-section excerpts rarely hold allocation detail.
	if containsAny(lower, "introductory", "intro") {
		score += 20
	}
	if strings.Contains(compressed, "financialsection") {
		score += 10
	}

	if containsAny(lower, "fy20", "fy19", "fy18") {
		score += 30
	}
	if containsAny(lower, "2020", "2019", "2018") {
		score += 30
	}
	return score
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
