package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/praticodes/litloom/internal/domain/model"
)

// Markup anchors on the catalog's book page. These track the site's current
// class names and break when the site restructures; that risk is accepted.
const (
	titleClass       = "Text__title1"
	authorClass      = "ContributorLink__name"
	ratingClass      = "RatingStatistics__rating"
	ratingCountAttr  = "ratingsCount"
	genreButtonClass = "BookPageMetadataSection__genreButton"
)

var leadingDigits = regexp.MustCompile(`\d+`)

// parseBook extracts a book record from a parsed book page. A page without a
// recognizable title yields the sentinel record and ErrUnavailable; missing
// rating or count fields fall back to their zero sentinels.
func parseBook(doc *html.Node) (model.Book, error) {
	title := textOf(findFirst(doc, byClass("h1", titleClass)))
	if title == "" {
		return model.Book{Title: model.UnavailableTitle}, ErrUnavailable
	}

	book := model.Book{
		Title:  title,
		Author: textOf(findFirst(doc, byClass("span", authorClass))),
		Genres: genreList(doc),
	}

	if raw := textOf(findFirst(doc, byClass("div", ratingClass))); raw != "" {
		if rating, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			book.Rating = rating
		}
	}
	book.RatingCount = parseRatingCount(textOf(findFirst(doc, byAttr("span", "data-testid", ratingCountAttr))))

	return book, nil
}

// parseRatingCount pulls the leading integer out of strings like
// "23,857 ratings".
func parseRatingCount(raw string) int {
	raw = strings.ReplaceAll(raw, ",", "")
	digits := leadingDigits.FindString(raw)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// genreList collects the genre button labels in page order.
func genreList(doc *html.Node) []string {
	var genres []string
	for _, n := range findAll(doc, byClass("span", genreButtonClass)) {
		if g := textOf(n); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// bookLinks returns the distinct book-page hrefs on a listing page, in first
// appearance order.
func bookLinks(doc *html.Node, baseURL string) []string {
	seen := make(map[string]bool)
	var links []string
	for _, a := range findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "a"
	}) {
		href := attrVal(a, "href")
		if !strings.Contains(href, "/book/show") {
			continue
		}
		if !strings.HasPrefix(href, "http") {
			href = strings.TrimSuffix(baseURL, "/") + href
		}
		if seen[href] {
			continue
		}
		seen[href] = true
		links = append(links, href)
	}
	return links
}

// matcher selects nodes during traversal.
type matcher func(*html.Node) bool

// byClass matches an element carrying the given class token.
func byClass(element, class string) matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != element {
			return false
		}
		for _, token := range strings.Fields(attrVal(n, "class")) {
			if token == class {
				return true
			}
		}
		return false
	}
}

// byAttr matches an element with an exact attribute value.
func byAttr(element, key, value string) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == element && attrVal(n, key) == value
	}
}

// findFirst returns the first matching node in depth-first order, or nil.
func findFirst(n *html.Node, match matcher) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every matching node in depth-first order.
func findAll(n *html.Node, match matcher) []*html.Node {
	var out []*html.Node
	if match(n) {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAll(c, match)...)
	}
	return out
}

// textOf concatenates and trims the text content under n. Returns "" for a
// nil node.
func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// attrVal returns the value of an attribute, or "".
func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
