package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	queue "github.com/praticodes/litloom/internal/adapters/mq/queue"
	worker "github.com/praticodes/litloom/internal/adapters/mq/worker"
	model "github.com/praticodes/litloom/internal/domain/model"
	"github.com/praticodes/litloom/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// fakeFetcher maps URLs to canned records.
type fakeFetcher struct {
	records map[string]model.Book
}

func (f *fakeFetcher) Fetch(_ context.Context, link string) (model.Book, error) {
	book, ok := f.records[link]
	if !ok {
		return model.Book{Title: model.UnavailableTitle}, errors.New("no such page")
	}
	return book, nil
}

// fakeAppender collects appended records.
type fakeAppender struct {
	mu    sync.Mutex
	books []model.Book
}

func (a *fakeAppender) Append(_ context.Context, books []model.Book) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.books = append(a.books, books...)
	return nil
}

func (a *fakeAppender) all() []model.Book {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.Book(nil), a.books...)
}

func TestPool(t *testing.T) {
	Convey("Given a pool over a queue of mixed jobs", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fetcher := &fakeFetcher{records: map[string]model.Book{
			"/book/show/1": {Title: "One", Author: "A", Rating: 4.2, RatingCount: 1000, Genres: []string{"Fiction"}},
			"/book/show/2": {Title: "Two", Author: "B", Rating: 4.6, RatingCount: 2000, Genres: []string{"Horror"}},
			"/book/show/3": {Title: model.UnavailableTitle},
		}}
		appender := &fakeAppender{}
		q := queue.NewInMemoryQueue(queue.WithCapacity(10))

		for _, url := range []string{"/book/show/1", "/book/show/2", "/book/show/3", "/book/show/missing"} {
			So(q.Enqueue(ctx, queue.Job{JobID: url, URL: url}), ShouldBeTrue)
		}

		Convey("When the pool drains the queue", func() {
			pool := worker.NewPool(q, fetcher, appender, worker.WithSize(2))
			pool.Start(ctx)
			So(q.Close(), ShouldBeNil)
			pool.Wait()

			Convey("Then only available records were appended", func() {
				books := appender.all()
				So(len(books), ShouldEqual, 2)
				titles := map[string]bool{}
				for _, b := range books {
					titles[b.Title] = true
				}
				So(titles["One"], ShouldBeTrue)
				So(titles["Two"], ShouldBeTrue)
			})
		})
	})
}
