package scimago

import (
	"regexp"
	"strconv"

	"journalrank/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var (
	totalSizeRegex = regexp.MustCompile(`total_size=(\d+)`)
	pageParamRegex = regexp.MustCompile(`(?:^|[?&;])page=(\d+)`)
)

// maxParam is the largest integer captured by re over every link target in doc.
func maxParam(links []string, re *regexp.Regexp) int {
	max := 0
	for _, href := range links {
		for _, groups := range re.FindAllStringSubmatch(href, -1) {
			n, err := strconv.Atoi(groups[1])
			if err != nil {
				continue
			}
			if n > max {
				max = n
			}
		}
	}
	return max
}

// ResolveTotal estimates the number of journals in the category of a ranking
// listing page. The pagination links carry the true total in a total_size
// parameter on most pages, otherwise the last page number times pageSize is
// used as an estimate.
func ResolveTotal(doc *goquery.Document, pageSize int) (int, bool) {
	var links []string
	htmlutil.FindAll(doc.Selection, "a", nil).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if ok {
			links = append(links, href)
		}
	})

	total := maxParam(links, totalSizeRegex)
	if total > 0 {
		return total, true
	}

	lastPage := maxParam(links, pageParamRegex)
	if lastPage > 0 {
		return lastPage * pageSize, true
	}

	return 0, false
}
