package pdftext

import (
	"fmt"
	"testing"
)

// sliceDoc is an in-memory Document: one string per page.
type sliceDoc []string

func (d sliceDoc) NumPages() int         { return len(d) }
func (d sliceDoc) PageText(i int) string { return d[i] }

func blankDoc(n int) sliceDoc { return make(sliceDoc, n) }

func TestLocate_FromTOC(t *testing.T) {
	doc := blankDoc(60)
	doc[4] = "Table of Contents\nIntroductory Section .......... 3\nInvestment Section .......... 45\nFinancial Section .......... 90"

	sec, ok := Locate(doc, Params{})
	if !ok {
		t.Fatal("expected a located section")
	}
	if sec.Start != 42 {
		t.Errorf("start = %d, want 42 (printed 45 minus offset 3)", sec.Start)
	}
	if sec.End != 60 {
		t.Errorf("end = %d, want 60 (start+40 clamped to total)", sec.End)
	}
}

func TestLocate_TOCVariants(t *testing.T) {
	cases := []struct {
		line  string
		start int
	}{
		{"Report from the Chief Investment Officer .... 52", 49},
		{"CIO Report 61", 58},
		{"Investment Overview..............33", 30},
	}
	for _, tc := range cases {
		doc := blankDoc(120)
		doc[2] = tc.line
		sec, ok := Locate(doc, Params{})
		if !ok {
			t.Errorf("%q: no section found", tc.line)
			continue
		}
		if sec.Start != tc.start {
			t.Errorf("%q: start = %d, want %d", tc.line, sec.Start, tc.start)
		}
	}
}

func TestLocate_HeaderFallback(t *testing.T) {
	doc := blankDoc(90)
	// No TOC entry anywhere; the heading itself sits at page index 35.
	doc[35] = "INVESTMENT SECTION\nReport on investment activity for the fiscal year."

	sec, ok := Locate(doc, Params{})
	if !ok {
		t.Fatal("expected header scan to find the section")
	}
	if sec.Start != 35 {
		t.Errorf("start = %d, want 35", sec.Start)
	}
	if sec.End != 75 {
		t.Errorf("end = %d, want 75", sec.End)
	}
}

func TestLocate_TOCWinsOverHeader(t *testing.T) {
	doc := blankDoc(120)
	doc[3] = "Investment Section ...... 80"
	doc[40] = "investment section"

	sec, ok := Locate(doc, Params{})
	if !ok || sec.Start != 77 {
		t.Fatalf("got (%v, %v), want TOC-derived start 77", sec, ok)
	}
}

func TestLocate_NothingFound(t *testing.T) {
	doc := blankDoc(50)
	for i := range doc {
		doc[i] = fmt.Sprintf("page %d of the budget narrative", i+1)
	}
	if _, ok := Locate(doc, Params{}); ok {
		t.Fatal("expected no section in an unrelated document")
	}
}

func TestLocate_PrintedPageBeyondDocument(t *testing.T) {
	doc := blankDoc(20)
	doc[1] = "Investment Section ...... 45"
	if _, ok := Locate(doc, Params{}); ok {
		t.Fatal("printed page past the end must not locate")
	}
}

func TestSamplePages(t *testing.T) {
	got := samplePages(40)
	want := []int{15, 18, 21, 24, 27, 30, 33, 36, 39}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	if got := samplePages(10); len(got) != 0 {
		t.Errorf("short document: got %v, want none", got)
	}

	for _, i := range samplePages(300) {
		if i < 15 || i >= 150 {
			t.Errorf("sampled page %d outside [15,150)", i)
		}
	}
}

func TestPagesToRead_LeadSectionTail(t *testing.T) {
	doc := blankDoc(200)
	doc[2] = "Investment Section ...... 95"

	pages := pagesToRead(doc, DefaultParams())

	set := make(map[int]bool, len(pages))
	for i, p := range pages {
		if i > 0 && pages[i-1] >= p {
			t.Fatalf("pages not strictly ascending: %v", pages)
		}
		set[p] = true
	}
	for i := 0; i < 15; i++ {
		if !set[i] {
			t.Errorf("lead page %d missing", i)
		}
	}
	for i := 92; i < 132; i++ {
		if !set[i] {
			t.Errorf("section page %d missing", i)
		}
	}
	for i := 195; i < 200; i++ {
		if !set[i] {
			t.Errorf("tail page %d missing", i)
		}
	}
}
