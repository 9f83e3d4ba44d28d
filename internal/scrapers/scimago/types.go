package scimago

import (
	"fmt"
)

type Quartile string

const (
	Q1         Quartile = "Q1"
	Q2         Quartile = "Q2"
	Q3         Quartile = "Q3"
	Q4         Quartile = "Q4"
	QuartileNA Quartile = "N/A"
)

// quartileOrder is the order in which quartile markers are checked on a row,
// the first one present wins.
var quartileOrder = []Quartile{Q1, Q2, Q3, Q4}

// LatestYear is the year reported when a query does not name one.
const LatestYear = "latest"

type SearchQuery struct {
	JournalName string
	CategoryId  string
	// Year is optional, an empty year means the latest rankings.
	Year string
}

type Category struct {
	Id   string
	Name string
}

type JournalProfile struct {
	// Title is the title as published by scimago, it may differ in case from the query.
	Title      string
	ProfileUrl string
	Categories []Category
}

type RankingRecord struct {
	JournalTitle string
	CategoryId   string
	CategoryName string
	Rank         int
	// Total is the number of journals in the category, 0 if it could not be determined.
	Total    int
	Quartile Quartile
	Year     string
	Page     int
}

func (r RankingRecord) TotalKnown() bool {
	return r.Total > 0
}

// Percentile is 100*rank/total, it is only available when the total is known.
func (r RankingRecord) Percentile() (float64, bool) {
	if !r.TotalKnown() || r.Rank < 1 {
		return 0, false
	}
	return 100 * float64(r.Rank) / float64(r.Total), true
}

func (r RankingRecord) PercentileString() string {
	p, ok := r.Percentile()
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", p)
}

func (r RankingRecord) TotalString() string {
	if !r.TotalKnown() {
		return "unknown"
	}
	return fmt.Sprint(r.Total)
}
