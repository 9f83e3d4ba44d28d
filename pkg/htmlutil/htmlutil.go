// Package htmlutil is a thin query layer over goquery, every DOM lookup of the
// scrapers goes through it so that markup assumptions stay in the scrapers.
package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse parses an html document leniently, malformed or truncated markup
// still produces a document.
func Parse(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// Predicate decides whether a selected element is kept.
type Predicate func(s *goquery.Selection) bool

// FindAll returns every descendant of root with the given tag for which pred
// holds, a nil pred keeps every element.
func FindAll(root *goquery.Selection, tag string, pred Predicate) *goquery.Selection {
	found := root.Find(tag)
	if pred == nil {
		return found
	}
	return found.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return pred(s)
	})
}

// FindFirst is FindAll limited to the first match, the returned selection is
// empty when nothing matches.
func FindFirst(root *goquery.Selection, tag string, pred Predicate) *goquery.Selection {
	return FindAll(root, tag, pred).First()
}

func AttrEquals(attr, value string) Predicate {
	return func(s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		return ok && v == value
	}
}

func AttrContains(attr, substr string) Predicate {
	return func(s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		return ok && strings.Contains(v, substr)
	}
}

func AttrMatches(attr string, re *regexp.Regexp) Predicate {
	return func(s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		return ok && re.MatchString(v)
	}
}

func HasClass(class string) Predicate {
	return func(s *goquery.Selection) bool {
		return s.HasClass(class)
	}
}

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// NormalizeText trims a string and collapses inner whitespace runs into a single space.
func NormalizeText(s string) string {
	s = removeNonPrintable(s)
	s = innerWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Text returns the normalized text of the first element in sel.
func Text(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return NormalizeText(GetText(sel.Get(0)))
}

type Anchor struct {
	Url  *url.URL
	Name string
}

// GetAnchors returns the anchors in sel with their href resolved against base,
// anchors without a parseable href are skipped.
func GetAnchors(base *url.URL, sel *goquery.Selection) []Anchor {
	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href, ok := attr(n, "href")
		if !ok {
			continue
		}
		link, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			continue
		}
		if base != nil {
			link = base.ResolveReference(link)
		}

		anchors = append(anchors, Anchor{
			Url:  link,
			Name: NormalizeText(GetText(n)),
		})
	}
	return anchors
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
