package catalog

import (
	"fmt"
	"time"
)

// monthsPerYear is spelled out to keep the URL loop readable.
const monthsPerYear = 12

// PopularByDateURLs returns the catalog's "popular by date published"
// listing URLs covering every month of last year plus this year up to now.
// These seed the harvest with recently published books.
func PopularByDateURLs(baseURL string, now time.Time) []string {
	year, month := now.Year(), int(now.Month())

	urls := make([]string, 0, month+monthsPerYear)
	for m := 1; m <= month; m++ {
		urls = append(urls, fmt.Sprintf("%s/book/popular_by_date/%d/%d", baseURL, year, m))
	}
	for m := 1; m <= monthsPerYear; m++ {
		urls = append(urls, fmt.Sprintf("%s/book/popular_by_date/%d/%d", baseURL, year-1, m))
	}
	return urls
}
