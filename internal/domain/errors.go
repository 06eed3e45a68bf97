package domain

import "fmt"

// MalformedInputError reports an address-book source or request that does
// not have the expected shape.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s", e.Reason)
}

// GeocodingError reports an address the geocoding provider could not resolve.
type GeocodingError struct {
	Address string
	Err     error
}

func (e *GeocodingError) Error() string {
	return fmt.Sprintf("geocode %q: %v", e.Address, e.Err)
}

func (e *GeocodingError) Unwrap() error { return e.Err }

// RoutingProviderError reports a failed or malformed routing call for one profile.
type RoutingProviderError struct {
	Profile TransportProfile
	Err     error
}

func (e *RoutingProviderError) Error() string {
	return fmt.Sprintf("routing provider (%s): %v", e.Profile, e.Err)
}

func (e *RoutingProviderError) Unwrap() error { return e.Err }
