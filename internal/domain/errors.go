package domain

import "errors"

var (
	// The input address is empty or unusable after normalization.
	ErrInvalidAddress = errors.New("invalid address")

	// Geocoding succeeded at the transport level but returned no usable
	// coordinate for the address.
	ErrNoRouteFound = errors.New("no location found for address")

	// The external Maps capability could not be reached or timed out.
	ErrUpstreamUnavailable = errors.New("maps service unavailable")
)
