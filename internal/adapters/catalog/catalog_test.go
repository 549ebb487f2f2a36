package catalog_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	catalog "github.com/praticodes/litloom/internal/adapters/catalog"
	model "github.com/praticodes/litloom/internal/domain/model"
	"github.com/praticodes/litloom/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const bookPage = `<!doctype html>
<html><body>
  <h1 class="Text Text__title1">Hello Stranger</h1>
  <span class="ContributorLink__name">Katherine Center</span>
  <div class="RatingStatistics__rating">4.09</div>
  <span data-testid="ratingsCount">23,857 ratings</span>
  <span class="BookPageMetadataSection__genreButton">Romance</span>
  <span class="BookPageMetadataSection__genreButton">Fiction</span>
  <span class="BookPageMetadataSection__genreButton">Contemporary</span>
</body></html>`

const listingPage = `<!doctype html>
<html><body>
  <a href="/book/show/61884987-hello-stranger">Hello Stranger</a>
  <a href="/book/show/58065033-lessons-in-chemistry">Lessons in Chemistry</a>
  <a href="/book/show/61884987-hello-stranger">Hello Stranger again</a>
  <a href="/author/show/123">Not a book</a>
</body></html>`

func testClient(handler http.Handler) (*catalog.Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := catalog.NewClient(
		catalog.WithBaseURL(srv.URL),
		catalog.WithRateLimit(1000, 1000),
	)
	return client, srv
}

func TestClient_Fetch(t *testing.T) {
	Convey("Given a catalog serving a well-formed book page", t, func() {
		ctx := context.Background()
		client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, bookPage)
		}))
		defer srv.Close()

		Convey("When fetching a book link", func() {
			book, err := client.Fetch(ctx, "/book/show/61884987-hello-stranger")
			So(err, ShouldBeNil)

			Convey("Then every field is extracted", func() {
				So(book.Title, ShouldEqual, "Hello Stranger")
				So(book.Author, ShouldEqual, "Katherine Center")
				So(book.Rating, ShouldEqual, 4.09)
				So(book.RatingCount, ShouldEqual, 23857)
				So(book.Genres, ShouldResemble, []string{"Romance", "Fiction", "Contemporary"})
				So(book.Unavailable(), ShouldBeFalse)
			})
		})
	})

	Convey("Given a page without a recognizable title", t, func() {
		ctx := context.Background()
		client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><body><p>nothing here</p></body></html>`)
		}))
		defer srv.Close()

		Convey("Then the sentinel record comes back with ErrUnavailable", func() {
			book, err := client.Fetch(ctx, "/book/show/000")
			So(err, ShouldEqual, catalog.ErrUnavailable)
			So(book.Title, ShouldEqual, model.UnavailableTitle)
			So(book.Unavailable(), ShouldBeTrue)
		})
	})

	Convey("Given a catalog responding 404", t, func() {
		ctx := context.Background()
		client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		Convey("Then the fetch reports the record unavailable", func() {
			_, err := client.Fetch(ctx, "/book/show/000")
			So(err, ShouldWrap, catalog.ErrUnavailable)
		})
	})

	Convey("Given a catalog responding 429", t, func() {
		ctx := context.Background()
		client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		Convey("Then the fetch reports rate limiting", func() {
			_, err := client.Fetch(ctx, "/book/show/000")
			So(err, ShouldWrap, catalog.ErrRateLimited)
		})
	})
}

func TestClient_DiscoverLinks(t *testing.T) {
	Convey("Given a listing page with duplicated and unrelated links", t, func() {
		ctx := context.Background()
		client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, listingPage)
		}))
		defer srv.Close()

		Convey("When discovering links", func() {
			links, err := client.DiscoverLinks(ctx, "/book/popular_by_date/2026/8")
			So(err, ShouldBeNil)

			Convey("Then only distinct book links survive, in page order", func() {
				So(links, ShouldResemble, []string{
					srv.URL + "/book/show/61884987-hello-stranger",
					srv.URL + "/book/show/58065033-lessons-in-chemistry",
				})
			})
		})
	})
}

func TestPopularByDateURLs(t *testing.T) {
	Convey("Given a fixed clock in March", t, func() {
		now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
		urls := catalog.PopularByDateURLs("https://example.com", now)

		Convey("Then this year contributes months up to now and last year all twelve", func() {
			So(len(urls), ShouldEqual, 3+12)
			So(urls[0], ShouldEqual, "https://example.com/book/popular_by_date/2026/1")
			So(urls[2], ShouldEqual, "https://example.com/book/popular_by_date/2026/3")
			So(urls[3], ShouldEqual, "https://example.com/book/popular_by_date/2025/1")
			So(urls[14], ShouldEqual, "https://example.com/book/popular_by_date/2025/12")
		})
	})
}
