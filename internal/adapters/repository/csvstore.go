package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/praticodes/litloom/internal/domain/model"
	"github.com/praticodes/litloom/pkg/metrics"
)

// CSV layout constants.
const (
	fieldTitle = iota
	fieldAuthor
	fieldRating
	fieldRatingCount
	fieldGenres
	fieldCount

	// genreSeparator joins the genre list into a single CSV field.
	genreSeparator = "|"
)

var csvHeader = []string{"title", "author", "rating", "rating_count", "genres"}

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithPath sets the backing file path.
func WithPath(path string) Option {
	return func(s *CSVStore) {
		if path != "" {
			s.path = path
		}
	}
}

// CSVStore implements Store over a flat CSV file.
//
// Reads parse the whole file per call; the pool is small and recommendation
// requests are expected to be isolated, so no cross-request cache is kept.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

// NewCSVStore creates a CSV-backed store with configuration options.
func NewCSVStore(opts ...Option) *CSVStore {
	s := &CSVStore{
		path: "books.csv",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// LoadAll reads every row, drops records carrying unavailability sentinels,
// and returns the rest in file order.
func (s *CSVStore) LoadAll(ctx context.Context) ([]model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = fieldCount

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	books := make([]model.Book, 0, len(rows))
	for i, row := range rows {
		if i == 0 && row[fieldTitle] == csvHeader[fieldTitle] {
			continue
		}
		book, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if book.Unavailable() {
			continue
		}
		books = append(books, book)
	}

	metrics.UpdatePoolSize(len(books))
	return books, nil
}

// Append writes records to the end of the file, creating it with a header
// row when absent. Records carrying unavailability sentinels are skipped.
func (s *CSVStore) Append(ctx context.Context, books []model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	writer := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	for _, book := range books {
		if book.Unavailable() {
			continue
		}
		row := []string{
			book.Title,
			book.Author,
			strconv.FormatFloat(book.Rating, 'f', -1, 64),
			strconv.Itoa(book.RatingCount),
			strings.Join(book.Genres, genreSeparator),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Count returns the number of available records, or 0 when the file cannot
// be read.
func (s *CSVStore) Count(ctx context.Context) int {
	books, err := s.LoadAll(ctx)
	if err != nil {
		return 0
	}
	return len(books)
}

func parseRow(row []string) (model.Book, error) {
	rating, err := strconv.ParseFloat(strings.TrimSpace(row[fieldRating]), 64)
	if err != nil {
		return model.Book{}, fmt.Errorf("%w: rating %q", ErrBadRecord, row[fieldRating])
	}

	count, err := strconv.Atoi(strings.TrimSpace(row[fieldRatingCount]))
	if err != nil || count < 0 {
		return model.Book{}, fmt.Errorf("%w: rating_count %q", ErrBadRecord, row[fieldRatingCount])
	}

	var genres []string
	if row[fieldGenres] != "" {
		genres = strings.Split(row[fieldGenres], genreSeparator)
	}

	return model.Book{
		Title:       row[fieldTitle],
		Author:      row[fieldAuthor],
		Rating:      rating,
		RatingCount: count,
		Genres:      genres,
	}, nil
}
