package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrEmptyCondition is returned when a recommendation query has no condition
	ErrEmptyCondition = fmt.Errorf("%w: condition is required", ErrInvalidRequest)

	// ErrEmptyName is returned when a product is added without a name
	ErrEmptyName = fmt.Errorf("%w: product name is required", ErrInvalidRequest)

	// ErrInvalidPrice is returned for negative or non-finite prices
	ErrInvalidPrice = fmt.Errorf("%w: price must be a finite non-negative number", ErrInvalidRequest)

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
