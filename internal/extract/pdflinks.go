package extract

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PDFLinks collects absolute URLs of PDF documents linked from an HTML page,
// in order of appearance, deduplicated. Returns nil when the markup cannot be
// parsed; a page without PDF links is not an error.
func PDFLinks(markup []byte, baseURL string) []string {
	if len(markup) == 0 {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	seen := make(map[string]struct{})
	var out []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if !strings.HasSuffix(strings.ToLower(stripQuery(href)), ".pdf") {
			return
		}
		abs := stripQuery(href)
		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				resolved := base.ResolveReference(ref)
				resolved.RawQuery = ""
				resolved.Fragment = ""
				abs = resolved.String()
			}
		}
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
	})
	return out
}

func stripQuery(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		return href[:i]
	}
	return href
}
