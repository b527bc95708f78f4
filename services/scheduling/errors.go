package scheduling

import "errors"

// ErrNoProviderAvailable signals that the requested slot has no free provider
// (or the explicitly requested provider is not free). Surfaced to the booking
// UI as "nothing available", not as a server fault.
var ErrNoProviderAvailable = errors.New("no provider available for the requested slot")
