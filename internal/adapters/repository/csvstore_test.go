package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	repository "github.com/praticodes/litloom/internal/adapters/repository"
	model "github.com/praticodes/litloom/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func tempStore(t *testing.T) (*repository.CSVStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.csv")
	return repository.NewCSVStore(repository.WithPath(path)), path
}

func TestCSVStore_AppendAndLoad(t *testing.T) {
	Convey("Given an empty CSV store", t, func() {
		ctx := context.Background()
		store, path := tempStore(t)

		books := []model.Book{
			{
				Title: "Lessons in Chemistry", Author: "Bonnie Garmus",
				Rating: 4.3, RatingCount: 500000,
				Genres: []string{"Fiction", "Historical Fiction"},
			},
			{
				Title: "Reminders of Him", Author: "Colleen Hoover",
				Rating: 4.4, RatingCount: 900000,
				Genres: []string{"Romance", "Fiction", "Contemporary"},
			},
		}

		Convey("When appending and loading records", func() {
			So(store.Append(ctx, books), ShouldBeNil)

			loaded, err := store.LoadAll(ctx)
			So(err, ShouldBeNil)

			Convey("Then the round trip preserves records in order", func() {
				So(loaded, ShouldResemble, books)
			})

			Convey("And Count reflects the pool size", func() {
				So(store.Count(ctx), ShouldEqual, 2)
			})
		})

		Convey("When appending twice", func() {
			So(store.Append(ctx, books[:1]), ShouldBeNil)
			So(store.Append(ctx, books[1:]), ShouldBeNil)

			Convey("Then the second append does not duplicate the header", func() {
				loaded, err := store.LoadAll(ctx)
				So(err, ShouldBeNil)
				So(len(loaded), ShouldEqual, 2)
			})
		})

		Convey("When appending records carrying unavailability sentinels", func() {
			mixed := append([]model.Book{
				{Title: model.UnavailableTitle, Rating: 4.0, RatingCount: 10},
				{Title: "Unrated", Author: "Nobody", Rating: 0.0},
			}, books...)
			So(store.Append(ctx, mixed), ShouldBeNil)

			Convey("Then only available records are stored", func() {
				loaded, err := store.LoadAll(ctx)
				So(err, ShouldBeNil)
				So(len(loaded), ShouldEqual, 2)
			})
		})

		Convey("When the file holds a sentinel row written by hand", func() {
			content := "title,author,rating,rating_count,genres\n" +
				"Title Unavailable,,4.1,100,Fiction\n" +
				"Kept,Someone,4.2,1000,Fiction|Romance\n"
			So(os.WriteFile(path, []byte(content), 0o644), ShouldBeNil)

			Convey("Then the load filters it out", func() {
				loaded, err := store.LoadAll(ctx)
				So(err, ShouldBeNil)
				So(len(loaded), ShouldEqual, 1)
				So(loaded[0].Title, ShouldEqual, "Kept")
				So(loaded[0].Genres, ShouldResemble, []string{"Fiction", "Romance"})
			})
		})
	})
}

func TestCSVStore_Failures(t *testing.T) {
	Convey("Given a store pointed at a missing file", t, func() {
		ctx := context.Background()
		store := repository.NewCSVStore(repository.WithPath(filepath.Join(t.TempDir(), "absent.csv")))

		Convey("Then loads report the repository as unavailable", func() {
			_, err := store.LoadAll(ctx)
			So(err, ShouldWrap, repository.ErrUnavailable)
		})

		Convey("And Count degrades to zero", func() {
			So(store.Count(ctx), ShouldEqual, 0)
		})
	})

	Convey("Given a file with a malformed rating", t, func() {
		ctx := context.Background()
		store, path := tempStore(t)
		content := "title,author,rating,rating_count,genres\n" +
			"Broken,Someone,not-a-number,10,Fiction\n"
		So(os.WriteFile(path, []byte(content), 0o644), ShouldBeNil)

		Convey("Then the load fails rather than returning a partial pool", func() {
			_, err := store.LoadAll(ctx)
			So(err, ShouldWrap, repository.ErrBadRecord)
		})
	})
}
