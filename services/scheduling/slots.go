package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"comoencasa/models"
	"comoencasa/utils"

	"go.uber.org/zap"
)

// slotCacheTTL keeps cached slot lists short-lived: occupancy changes with
// every confirmed payment and the cache is only meant to absorb bursts of
// calendar traffic.
const slotCacheTTL = 30 * time.Second

func slotCacheKey(date string) string {
	return "slots:" + date
}

// OpenSlots computes the bookable start times of a calendar date.
//
// Candidate times are enumerated at a fixed one-hour step inside each
// availability window's [start, end) range; a 09:00-14:00 window yields
// 09:00 through 13:00. A candidate is open while at least one provider whose
// window covers it has no appointment starting at that exact instant.
func (se *DefaultSchedulingEngine) OpenSlots(ctx context.Context, date string) ([]string, error) {
	logger := utils.GetLogger()

	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	// Past dates never have slots.
	today := se.now().UTC().Truncate(24 * time.Hour)
	if day.Before(today) {
		return []string{}, nil
	}

	if cached := se.cachedSlots(ctx, date); cached != nil {
		return cached, nil
	}

	availableAt, err := se.availableProvidersByTime(ctx, day)
	if err != nil {
		return nil, err
	}

	var open []string
	for hhmm, providers := range availableAt {
		busy, err := se.busyProvidersAt(ctx, date, hhmm)
		if err != nil {
			return nil, err
		}
		free := 0
		for id := range providers {
			if !busy[id] {
				free++
			}
		}
		if free > 0 {
			open = append(open, hhmm)
		}
	}
	sort.Strings(open)
	if open == nil {
		open = []string{}
	}

	se.cacheSlots(ctx, date, open)
	logger.Debug("computed open slots", zap.String("date", date), zap.Int("count", len(open)))
	return open, nil
}

// CandidateProviders returns the active providers free to take a session at
// (date, startTime): everyone whose weekly window covers the time, minus the
// providers already booked at that exact start. Order is ascending by
// provider ID, which is also the auto-assignment tie-break.
func (se *DefaultSchedulingEngine) CandidateProviders(ctx context.Context, date, startTime string) ([]models.Provider, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	startMin, err := minutesOfDay(startTime)
	if err != nil {
		return nil, err
	}

	today := se.now().UTC().Truncate(24 * time.Hour)
	if day.Before(today) {
		return []models.Provider{}, nil
	}

	providers, err := se.ProviderRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active providers: %w", err)
	}
	windows, err := se.AvailabilityRepo.WindowsForWeekday(ctx, int(day.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("failed to load availability for %s: %w", date, err)
	}

	covered := make(map[string]bool)
	for _, w := range windows {
		ws, err := minutesOfDay(w.StartTime)
		if err != nil {
			continue
		}
		we, err := minutesOfDay(w.EndTime)
		if err != nil {
			continue
		}
		if ws <= startMin && startMin < we {
			covered[w.ProviderID] = true
		}
	}

	busy, err := se.busyProvidersAt(ctx, date, startTime)
	if err != nil {
		return nil, err
	}

	// providers is already sorted by ID; keep that order.
	var candidates []models.Provider
	for _, p := range providers {
		if covered[p.ID] && !busy[p.ID] {
			candidates = append(candidates, p)
		}
	}
	if candidates == nil {
		candidates = []models.Provider{}
	}
	return candidates, nil
}

// availableProvidersByTime enumerates every candidate start time of the day
// and the providers whose window covers it. Overlapping windows of one
// provider collapse into the same set entries, so disjointness is not
// required of the stored schedule.
func (se *DefaultSchedulingEngine) availableProvidersByTime(ctx context.Context, day time.Time) (map[string]map[string]bool, error) {
	providers, err := se.ProviderRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active providers: %w", err)
	}
	active := make(map[string]bool, len(providers))
	for _, p := range providers {
		active[p.ID] = true
	}

	windows, err := se.AvailabilityRepo.WindowsForWeekday(ctx, int(day.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}

	step := int(utils.SlotGranularity.Minutes())
	availableAt := make(map[string]map[string]bool)
	for _, w := range windows {
		if !active[w.ProviderID] {
			continue
		}
		ws, err := minutesOfDay(w.StartTime)
		if err != nil {
			continue
		}
		we, err := minutesOfDay(w.EndTime)
		if err != nil {
			continue
		}
		for m := ws; m < we; m += step {
			hhmm := formatMinutes(m)
			if availableAt[hhmm] == nil {
				availableAt[hhmm] = make(map[string]bool)
			}
			availableAt[hhmm][w.ProviderID] = true
		}
	}
	return availableAt, nil
}

func (se *DefaultSchedulingEngine) cachedSlots(ctx context.Context, date string) []string {
	if se.Cache == nil {
		return nil
	}
	data, err := se.Cache.Get(ctx, slotCacheKey(date)).Result()
	if err != nil {
		return nil
	}
	var slots []string
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		return nil
	}
	return slots
}

func (se *DefaultSchedulingEngine) cacheSlots(ctx context.Context, date string, slots []string) {
	if se.Cache == nil {
		return
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	// Cache failures only cost us a recomputation.
	_ = se.Cache.Set(ctx, slotCacheKey(date), data, slotCacheTTL).Err()
}

// InvalidateSlots drops the cached slot list for a date. Called after an
// appointment lands so the calendar stops offering the consumed slot early.
func (se *DefaultSchedulingEngine) InvalidateSlots(ctx context.Context, date string) {
	if se.Cache == nil {
		return
	}
	_ = se.Cache.Del(ctx, slotCacheKey(date)).Err()
}
