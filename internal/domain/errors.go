package domain

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnresolvableProduct = errors.New("no product id in url")
	ErrMalformedPage       = errors.New("malformed review page")
	ErrEmptyContent        = errors.New("review has no content")
	ErrUnknownLabel        = errors.New("unknown sentiment label")
	ErrNotFound            = errors.New("not found")
)
