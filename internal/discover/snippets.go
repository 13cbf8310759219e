package discover

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Snippet recency priorities. Sorting is stable, so snippets within one
// priority keep their discovery order.
const (
	priorityRecent  = 0
	priorityUndated = 1
	priorityOld     = 2
)

var (
	bracketDateRe = regexp.MustCompile(`^\[([^\]]+)\]`)
	yearRe        = regexp.MustCompile(`\b20(\d{2})\b`)
)

// RankSnippetsByRecency orders snippets so dated recent content comes first,
// undated content next, and stale content last. Pure over the snippet text;
// no I/O.
func RankSnippetsByRecency(snippets []string, now time.Time) []string {
	out := make([]string, len(snippets))
	copy(out, snippets)
	sort.SliceStable(out, func(i, j int) bool {
		return snippetPriority(out[i], now) < snippetPriority(out[j], now)
	})
	return out
}

func snippetPriority(snippet string, now time.Time) int {
	recentYear := now.Year() - 1
	staleYear := now.Year() - 5

	// A bracketed tag at the start, e.g. "[3 days ago]" or "[Jan 15, 2025]",
	// is the provider's own date hint and wins over years in the body.
	if m := bracketDateRe.FindStringSubmatch(snippet); m != nil {
		tag := strings.ToLower(m[1])
		if containsAny(tag, "day", "hour", "minute", "week", "month ago") {
			return priorityRecent
		}
		if ym := yearRe.FindStringSubmatch(tag); ym != nil {
			if year := 2000 + atoi(ym[1]); year >= recentYear {
				return priorityRecent
			}
			return priorityOld
		}
	}

	// Otherwise judge by the most recent year mentioned in the text.
	maxYear := 0
	for _, ym := range yearRe.FindAllStringSubmatch(snippet, -1) {
		if year := 2000 + atoi(ym[1]); year > maxYear {
			maxYear = year
		}
	}
	switch {
	case maxYear >= recentYear:
		return priorityRecent
	case maxYear > 0 && maxYear <= staleYear:
		return priorityOld
	default:
		return priorityUndated
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
