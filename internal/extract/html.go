package extract

import (
	"bytes"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// FromHTML extracts boilerplate-free readable text from raw markup. It runs
// readability first, which drops navigation, ads, and footers; when that
// fails or comes back empty (sparse pages confuse it) a plain DOM walk over
// <main>/<article>/<body> is used instead. Returns "" on any parse failure.
func FromHTML(markup []byte, pageURL string) string {
	if len(markup) == 0 {
		return ""
	}
	u, _ := url.Parse(pageURL)
	if article, err := readability.FromReader(bytes.NewReader(markup), u); err == nil {
		if text := normalizeWhitespace(article.TextContent); text != "" {
			return text
		}
	}
	return fallbackText(markup)
}

// fallbackText walks the DOM directly, skipping script/style/nav/footer
// subtrees and inserting breaks around block elements.
func fallbackText(markup []byte) string {
	node, err := html.Parse(bytes.NewReader(markup))
	if err != nil || node == nil {
		return ""
	}
	content := findFirst(node, "main")
	if content == nil {
		content = findFirst(node, "article")
	}
	if content == nil {
		content = findFirst(node, "body")
	}
	if content == nil {
		return ""
	}
	var b strings.Builder
	collectText(&b, content)
	return normalizeWhitespace(b.String())
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if res := findFirst(c, tag); res != nil {
			return res
		}
	}
	return nil
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "nav", "footer", "aside", "iframe":
			return
		case "br", "hr", "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "tr", "div":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr":
			b.WriteString("\n")
		}
	}
}

// normalizeWhitespace trims lines, collapses internal space runs, and keeps
// at most one blank line between paragraphs.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			if len(out) > 0 {
				out = append(out, "")
			}
			continue
		}
		out = append(out, strings.Join(strings.Fields(trimmed), " "))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
