package scheduling

import (
	"context"
	"fmt"

	"comoencasa/utils"

	"go.uber.org/zap"
)

// DefaultMatchingService implements MatchingService on top of the slot
// planner's candidate sets. Resolution is a pure read-and-decide step with no
// side effects; the provisioning workflow re-invokes it after payment because
// occupancy may have moved since checkout.
type DefaultMatchingService struct {
	Engine SchedulingEngine
}

// Resolve picks the provider for a booking at (date, startTime).
//
// With an explicit providerID, it succeeds iff that provider is still in the
// candidate set. With nil, it auto-assigns the candidate with the lowest
// provider ID, which is deterministic but not a fairness policy.
func (s *DefaultMatchingService) Resolve(ctx context.Context, date, startTime string, providerID *string) (string, error) {
	logger := utils.GetLogger()

	candidates, err := s.Engine.CandidateProviders(ctx, date, startTime)
	if err != nil {
		return "", fmt.Errorf("failed to resolve provider for %s %s: %w", date, startTime, err)
	}

	if providerID != nil {
		for _, c := range candidates {
			if c.ID == *providerID {
				return c.ID, nil
			}
		}
		logger.Info("requested provider not available",
			zap.String("providerID", *providerID),
			zap.String("date", date),
			zap.String("time", startTime))
		return "", ErrNoProviderAvailable
	}

	if len(candidates) == 0 {
		return "", ErrNoProviderAvailable
	}

	assigned := candidates[0].ID
	logger.Debug("auto-assigned provider",
		zap.String("providerID", assigned),
		zap.String("date", date),
		zap.String("time", startTime))
	return assigned, nil
}
