package booking

import "errors"

var (
	// ErrProviderNoLongerAvailable is returned by the provisioning workflow
	// when the provider chosen at checkout time cannot take the slot anymore.
	// Distinct from scheduling.ErrNoProviderAvailable so a redelivery retry
	// (which re-resolves and might succeed) is distinguishable from a slot
	// that was never bookable.
	ErrProviderNoLongerAvailable = errors.New("selected provider is no longer available for this slot")

	// ErrIdentityProvisioning wraps failures to resolve or create the client
	// account. Fatal to the current run; the payment processor's redelivery
	// is the retry mechanism.
	ErrIdentityProvisioning = errors.New("failed to provision client identity")
)
