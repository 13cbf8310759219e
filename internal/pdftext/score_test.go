package pdftext

import "testing"

func TestScorePage(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"unrelated", "Minutes of the parks and recreation committee.", 0},
		// "asset allocation" is both a section marker (5) and a secondary
		// keyword (1).
		{"allocation phrase", "Asset allocation for the fiscal year.", 6},
		// marker "chief investment officer" (5) + secondary "chief investment
		// officer" and "investment staff" (2).
		{"cio page", "The chief investment officer leads the investment staff.", 7},
		{"repeats count once", "asset allocation asset allocation asset allocation", 6},
	}
	for _, tc := range cases {
		if got := ScorePage(tc.text); got != tc.want {
			t.Errorf("%s: ScorePage = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestScorePage_SectionOpener(t *testing.T) {
	text := `INVESTMENT SECTION
Report from the Chief Investment Officer
The target asset allocation approved by the board of trustees allocates
capital across public equity, fixed income, private equity, real estate,
and absolute return strategies. NEPC serves as the investment consultant.`

	got := ScorePage(text)
	if got < DefaultParams().HighValueThreshold {
		t.Fatalf("score %d below high-value threshold", got)
	}
	if got < 20 {
		t.Errorf("score %d, expected a section opener to score at least 20", got)
	}
}
