// Package pdftext mines annual-report-style PDFs (the CAFR genre: 100-300
// page sectioned public-fund documents) for investment content. It locates
// the investment section, reads a bounded page subset, scores per-page
// relevance, and emits high-value pages first.
package pdftext

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// Params holds the extraction heuristics. The TOC offset and section length
// are tuned against a small sample of real CAFRs; keep them adjustable
// rather than baked in.
type Params struct {
	// TOCScanPages is how many leading pages are scanned for a table of
	// contents entry naming the investment section.
	TOCScanPages int
	// TOCPageOffset is subtracted from a printed page number found in the
	// TOC: front matter usually shifts printed numbers from physical ones.
	TOCPageOffset int
	// SectionLength is the assumed page length of the investment section.
	SectionLength int
	// HeaderScanStart/End bound the direct header scan fallback window.
	HeaderScanStart int
	HeaderScanEnd   int
	// LeadPages and TailPages are always read: front matter holds board and
	// staff rosters, the last pages often list advisors and consultants.
	LeadPages int
	TailPages int
	// MaxPages caps the total pages read per document. FallbackMaxPages is
	// the tighter cap used by the plain-text reader fallback.
	MaxPages         int
	FallbackMaxPages int
	// HighValueThreshold is the minimum relevance score that promotes a page
	// ahead of the rest of the output.
	HighValueThreshold int
}

// DefaultParams returns the tuned defaults.
func DefaultParams() Params {
	return Params{
		TOCScanPages:       15,
		TOCPageOffset:      3,
		SectionLength:      40,
		HeaderScanStart:    30,
		HeaderScanEnd:      120,
		LeadPages:          15,
		TailPages:          5,
		MaxPages:           100,
		FallbackMaxPages:   60,
		HighValueThreshold: 3,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.TOCScanPages <= 0 {
		p.TOCScanPages = d.TOCScanPages
	}
	if p.TOCPageOffset <= 0 {
		p.TOCPageOffset = d.TOCPageOffset
	}
	if p.SectionLength <= 0 {
		p.SectionLength = d.SectionLength
	}
	if p.HeaderScanStart <= 0 {
		p.HeaderScanStart = d.HeaderScanStart
	}
	if p.HeaderScanEnd <= 0 {
		p.HeaderScanEnd = d.HeaderScanEnd
	}
	if p.LeadPages <= 0 {
		p.LeadPages = d.LeadPages
	}
	if p.TailPages <= 0 {
		p.TailPages = d.TailPages
	}
	if p.MaxPages <= 0 {
		p.MaxPages = d.MaxPages
	}
	if p.FallbackMaxPages <= 0 {
		p.FallbackMaxPages = d.FallbackMaxPages
	}
	if p.HighValueThreshold <= 0 {
		p.HighValueThreshold = d.HighValueThreshold
	}
	return p
}

// Document is the page-oriented view the locator and sampler operate on.
// Page indices are 0-based. Implementations must be cheap to call repeatedly.
type Document interface {
	NumPages() int
	PageText(i int) string
}

// ExtractedPage is one read page with its relevance score. Rows of any
// flattened table are already appended to Text.
type ExtractedPage struct {
	Index int
	Text  string
	Score int
}

// Extract pulls investment-relevant text out of PDF bytes. The row-aware
// reader runs first and flattens tabular rows pipe-delimited; if it yields
// nothing the plain-text reader retries with a tighter page cap. Corrupt or
// unsupported documents yield ""; extraction never fails upward.
func Extract(data []byte, p Params) string {
	if len(data) == 0 {
		return ""
	}
	p = p.withDefaults()
	if text := extractPass(data, p, true, p.MaxPages); text != "" {
		return text
	}
	return extractPass(data, p, false, p.FallbackMaxPages)
}

func extractPass(data []byte, p Params, withRows bool, maxPages int) (out string) {
	// The underlying parser is known to panic on some malformed streams;
	// treat a panic the same as an unreadable document.
	defer func() {
		if r := recover(); r != nil {
			log.Debug().Interface("panic", r).Msg("pdf parser panic; treating as unreadable")
			out = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Debug().Err(err).Msg("open pdf failed")
		return ""
	}
	doc := &readerDocument{reader: reader, texts: make(map[int]string)}
	total := doc.NumPages()
	if total == 0 {
		return ""
	}

	pages := pagesToRead(doc, p)
	if len(pages) > maxPages {
		pages = pages[:maxPages]
	}
	log.Debug().Int("total", total).Int("reading", len(pages)).Bool("rows", withRows).Msg("pdf page selection")

	var read []ExtractedPage
	for _, i := range pages {
		text := doc.PageText(i)
		if withRows {
			if rows := doc.tableRows(i); len(rows) > 0 {
				text = text + "\n" + strings.Join(rows, "\n")
			}
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		read = append(read, ExtractedPage{Index: i, Text: text, Score: ScorePage(text)})
	}
	return assemblePages(read, p.HighValueThreshold)
}

// assemblePages emits pages scoring at or above the threshold first, each
// tagged with its printed page number for traceability, then the rest in
// read order.
func assemblePages(pages []ExtractedPage, threshold int) string {
	var highValue, regular []string
	for _, page := range pages {
		if page.Score >= threshold {
			highValue = append(highValue, fmt.Sprintf("[Page %d]\n%s", page.Index+1, page.Text))
		} else {
			regular = append(regular, page.Text)
		}
	}
	return strings.TrimSpace(strings.Join(append(highValue, regular...), "\n\n"))
}

// readerDocument adapts the pdf reader to Document with memoized page text.
// Reader page numbers are 1-based; Document indices are 0-based.
type readerDocument struct {
	reader *pdf.Reader
	texts  map[int]string
}

func (d *readerDocument) NumPages() int { return d.reader.NumPage() }

func (d *readerDocument) PageText(i int) string {
	if text, ok := d.texts[i]; ok {
		return text
	}
	text := ""
	page := d.reader.Page(i + 1)
	if !page.V.IsNull() {
		if t, err := page.GetPlainText(nil); err == nil {
			text = t
		}
	}
	d.texts[i] = text
	return text
}

// tableRows flattens multi-column rows of a page into pipe-delimited strings.
// Cells are split on large horizontal gaps between positioned fragments;
// rows with fewer than two cells are prose, not tables, and are skipped.
func (d *readerDocument) tableRows(i int) []string {
	page := d.reader.Page(i + 1)
	if page.V.IsNull() {
		return nil
	}
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil
	}
	var out []string
	for _, row := range rows {
		cells := splitRowCells(row.Content)
		if len(cells) < 2 {
			continue
		}
		joined := strings.Join(cells, " | ")
		if strings.TrimSpace(joined) != "" {
			out = append(out, joined)
		}
	}
	return out
}

// cellGap is the horizontal distance, in text-space units, that separates
// two fragments into distinct cells.
const cellGap = 12.0

func splitRowCells(frags []pdf.Text) []string {
	var cells []string
	var cur strings.Builder
	lastEnd := 0.0
	for idx, t := range frags {
		if idx > 0 && t.X-lastEnd > cellGap {
			if s := strings.TrimSpace(cur.String()); s != "" {
				cells = append(cells, s)
			}
			cur.Reset()
		}
		cur.WriteString(t.S)
		lastEnd = t.X + t.W
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		cells = append(cells, s)
	}
	return cells
}

// pagesToRead is the union of the lead pages, the located-or-sampled
// investment range, and the tail pages, sorted ascending.
func pagesToRead(doc Document, p Params) []int {
	total := doc.NumPages()
	set := make(map[int]struct{})
	for i := 0; i < min(p.LeadPages, total); i++ {
		set[i] = struct{}{}
	}
	if sec, ok := Locate(doc, p); ok {
		for i := sec.Start; i < sec.End; i++ {
			set[i] = struct{}{}
		}
	} else {
		for _, i := range samplePages(total) {
			set[i] = struct{}{}
		}
	}
	for i := max(0, total-p.TailPages); i < total; i++ {
		set[i] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
