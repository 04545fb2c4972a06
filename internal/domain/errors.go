package domain

import "errors"

var (
	// ErrProductNotFound is returned when a barcode matches nothing locally or upstream
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrLookupAPIFailure is returned when the Open Food Facts request fails
	ErrLookupAPIFailure = errors.New("barcode lookup request failed")

	// ErrStoreUnavailable is returned when the history store cannot be reached
	ErrStoreUnavailable = errors.New("product store unavailable")

	// ErrCorruptRecord is returned when a stored product row fails to decode
	ErrCorruptRecord = errors.New("stored product record is corrupt")
)
