package pdftext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Section is an inclusive-start, exclusive-end page index range believed to
// hold the investment section.
type Section struct {
	Start int
	End   int
}

// TOC entries pairing an investment-related label with a printed page number,
// e.g. "Investment Section ........ 45".
var tocPatterns = []*regexp.Regexp{
	regexp.MustCompile(`investment\s+section[.\s]*(\d+)`),
	regexp.MustCompile(`report.*chief investment officer[.\s]*(\d+)`),
	regexp.MustCompile(`cio\s+report[.\s]*(\d+)`),
	regexp.MustCompile(`investment\s+overview[.\s]*(\d+)`),
}

// Header phrases that open the section when it is scanned for directly.
var sectionHeaders = []string{
	"investment section",
	"report from the chief investment officer",
	"report of the chief investment officer",
	"chief investment officer's report",
}

// strategy is one way of locating the investment section. Strategies are
// pure over the Document and independently testable.
type strategy struct {
	name   string
	locate func(Document, Params) (Section, bool)
}

var strategies = []strategy{
	{"toc", locateFromTOC},
	{"header", locateFromHeaders},
}

// Locate runs the strategy chain in order and returns the first hit. A false
// result means the caller should fall back to proportional sampling.
func Locate(doc Document, p Params) (Section, bool) {
	p = p.withDefaults()
	for _, s := range strategies {
		if sec, ok := s.locate(doc, p); ok {
			log.Debug().Str("strategy", s.name).Int("start", sec.Start).Int("end", sec.End).Msg("investment section located")
			return sec, true
		}
	}
	return Section{}, false
}

// locateFromTOC scans the leading pages for a table-of-contents line naming
// the investment section with a page number. Printed numbers trail physical
// indices by the front matter, hence the configured offset.
func locateFromTOC(doc Document, p Params) (Section, bool) {
	total := doc.NumPages()
	for i := 0; i < min(p.TOCScanPages, total); i++ {
		text := strings.ToLower(doc.PageText(i))
		if text == "" {
			continue
		}
		for _, re := range tocPatterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			printed, err := strconv.Atoi(m[1])
			if err != nil || printed <= 0 {
				continue
			}
			start := max(0, printed-p.TOCPageOffset)
			if start >= total {
				continue
			}
			return Section{Start: start, End: min(start+p.SectionLength, total)}, true
		}
	}
	return Section{}, false
}

// locateFromHeaders scans a fixed physical window for the section heading
// itself. Most CAFRs open the investment section between pages 30 and 120.
func locateFromHeaders(doc Document, p Params) (Section, bool) {
	total := doc.NumPages()
	for i := min(p.HeaderScanStart, total); i < min(p.HeaderScanEnd, total); i++ {
		text := strings.ToLower(doc.PageText(i))
		if text == "" {
			continue
		}
		for _, h := range sectionHeaders {
			if strings.Contains(text, h) {
				return Section{Start: i, End: min(i + p.SectionLength, total)}, true
			}
		}
	}
	return Section{}, false
}

// samplePages picks a middle-weighted page subset when no section was found:
// investment content concentrates in the middle of this document genre.
func samplePages(total int) []int {
	ranges := []struct{ start, end, step int }{
		{15, 50, 3},
		{50, 100, 2},
		{100, 150, 4},
	}
	var out []int
	for _, r := range ranges {
		if r.start >= total {
			break
		}
		for i := r.start; i < min(r.end, total); i += r.step {
			out = append(out, i)
		}
	}
	return out
}
