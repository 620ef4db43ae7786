package hh

import (
	"errors"
	"fmt"
)

// ErrInvalidListing is wrapped by every *ListingError.
var ErrInvalidListing = errors.New("invalid listing")

// ListingError reports a listing whose fields do not match the expected
// types, e.g. a fractional salary bound.
type ListingError struct {
	Page  int
	Index int
	Err   error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("hh: %s %d on page %d: %v", ErrInvalidListing, e.Index, e.Page, e.Err)
}

// Is lets errors.Is match ErrInvalidListing.
func (e *ListingError) Is(target error) bool {
	return target == ErrInvalidListing
}

func (e *ListingError) Unwrap() error {
	return e.Err
}
