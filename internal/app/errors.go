package service

import "errors"

var (
	// ErrEmptySelection is returned when a recommendation request carries
	// no genres.
	ErrEmptySelection = errors.New("no genres selected")

	// ErrRepositoryUnavailable is returned when the book pool cannot be
	// read or holds no available records.
	ErrRepositoryUnavailable = errors.New("book pool unavailable")

	// ErrHarvestDisabled is returned by harvest operations on a service
	// started without the harvest pipeline.
	ErrHarvestDisabled = errors.New("harvest pipeline disabled")
)
