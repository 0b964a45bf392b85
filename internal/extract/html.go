package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Extraction methods, most specific first
const (
	MethodText       = "text"
	MethodArticle    = "article"
	MethodContainer  = "container"
	MethodParagraphs = "paragraphs"
	MethodBody       = "body"
)

const (
	minBlockChars     = 30 // paragraph must be longer than this to count
	minSentenceChars  = 50 // body-text sentence must be longer than this
	maxParagraphs     = 50
	maxSentences      = 30
	minContainerParas = 3
)

// boilerplate elements removed before any text is collected
var denylist = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true, "template": true,
	"nav": true, "header": true, "footer": true, "aside": true,
	"button": true, "form": true, "img": true, "svg": true, "video": true, "audio": true,
}

// elements whose text content is never prose
var rawText = map[string]bool{"script": true, "style": true, "noscript": true, "template": true}

var (
	articleClass  = regexp.MustCompile(`(?i)article[-_]?body|article[-_]?content|story[-_]?body|post[-_]?content`)
	articleID     = regexp.MustCompile(`(?i)article|story|content|post`)
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
)

// Page is the static text recovered from an HTML document
type Page struct {
	Title  string
	Text   string
	Method string
}

// ParsePage parses HTML and returns its headline and body text.
// Script execution is never attempted; dynamic pages yield whatever static text exists.
func ParsePage(htmlContent string) (*Page, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	page := &Page{}
	if title := findFirst(doc, isElement("title")); title != nil {
		page.Title = NormalizeWhitespace(textOf(title))
	}

	prune(doc)

	page.Text, page.Method = articleText(doc)
	return page, nil
}

// articleText tries the heuristics in order and returns the first non-empty result
func articleText(doc *html.Node) (string, string) {
	containers := []*html.Node{
		findFirst(doc, isElement("article")),
		findFirst(doc, func(n *html.Node) bool { return isElement("div")(n) && classMatches(n, articleClass) }),
		findFirst(doc, func(n *html.Node) bool {
			return isElement("div")(n) && articleID.MatchString(attr(n, "id"))
		}),
		findFirst(doc, isElement("main")),
	}
	for _, c := range containers {
		if c == nil {
			continue
		}
		if parts := blocks(c, minBlockChars, "p", "h2", "h3"); len(parts) > 0 {
			return NormalizeWhitespace(strings.Join(parts, " ")), MethodArticle
		}
	}

	if best := densestContainer(doc); best != nil {
		if parts := blocks(best, minBlockChars, "p"); len(parts) > 0 {
			return NormalizeWhitespace(strings.Join(parts, " ")), MethodContainer
		}
	}

	if parts := blocks(doc, minBlockChars, "p"); len(parts) > 0 {
		if len(parts) > maxParagraphs {
			parts = parts[:maxParagraphs]
		}
		return NormalizeWhitespace(strings.Join(parts, " ")), MethodParagraphs
	}

	if body := findFirst(doc, isElement("body")); body != nil {
		var sentences []string
		for _, s := range sentenceSplit.Split(NormalizeWhitespace(textOf(body)), -1) {
			s = strings.TrimSpace(s)
			if utf8.RuneCountInString(s) > minSentenceChars {
				sentences = append(sentences, s)
			}
			if len(sentences) == maxSentences {
				break
			}
		}
		if len(sentences) > 0 {
			return strings.Join(sentences, ". "), MethodBody
		}
	}

	return "", ""
}

// densestContainer returns the div with the most direct <p> children, if it has enough
func densestContainer(doc *html.Node) *html.Node {
	var best *html.Node
	maxCount := 0
	for _, div := range findAll(doc, isElement("div")) {
		count := 0
		for c := div.FirstChild; c != nil; c = c.NextSibling {
			if isElement("p")(c) {
				count++
			}
		}
		if count > maxCount {
			maxCount = count
			best = div
		}
	}
	if maxCount < minContainerParas {
		return nil
	}
	return best
}

// blocks returns the normalized text of matching descendants longer than minChars
func blocks(root *html.Node, minChars int, tags ...string) []string {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}

	var parts []string
	for _, n := range findAll(root, func(n *html.Node) bool { return n.Type == html.ElementNode && want[n.Data] }) {
		text := NormalizeWhitespace(textOf(n))
		if utf8.RuneCountInString(text) > minChars {
			parts = append(parts, text)
		}
	}
	return parts
}

// prune removes denylisted elements from the tree
func prune(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && denylist[c.Data] {
			n.RemoveChild(c)
		} else if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			prune(c)
		}
		c = next
	}
}

// textOf concatenates all descendant text nodes separated by spaces
func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		buf.WriteString(textOf(c))
		buf.WriteString(" ")
	}
	return buf.String()
}

// StripMarkup returns the text content of an HTML fragment or plain text
func StripMarkup(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var buf strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return NormalizeWhitespace(buf.String())
		case html.TextToken:
			if skip == 0 {
				buf.Write(z.Text())
				buf.WriteString(" ")
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			if rawText[string(name)] {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if rawText[string(name)] && skip > 0 {
				skip--
			}
		}
	}
}

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func classMatches(n *html.Node, re *regexp.Regexp) bool {
	for _, class := range strings.Fields(attr(n, "class")) {
		if re.MatchString(class) {
			return true
		}
	}
	return false
}

func findAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}

func findFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	if predicate(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, predicate); found != nil {
			return found
		}
	}
	return nil
}
