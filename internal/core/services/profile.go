package services

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
	"github.com/custodia-labs/shopsearch/internal/logger"
)

// Ensure ProfileSync implements the interface.
var _ driving.ProfileService = (*ProfileSync)(nil)

// ProfileSync saves and reloads engine state through the driven stores.
// Either store may be nil, in which case that state stays in memory only.
type ProfileSync struct {
	search          *SearchEngine
	recommendations *RecommendationEngine
	personalization *PersonalizationEngine
	profiles        driven.ProfileStore
	queries         driven.QueryLogStore
	now             func() time.Time
}

// NewProfileSync creates a profile sync service.
func NewProfileSync(
	search *SearchEngine,
	recommendations *RecommendationEngine,
	personalization *PersonalizationEngine,
	profiles driven.ProfileStore,
	queries driven.QueryLogStore,
) *ProfileSync {
	return &ProfileSync{
		search:          search,
		recommendations: recommendations,
		personalization: personalization,
		profiles:        profiles,
		queries:         queries,
		now:             time.Now,
	}
}

// Persist writes every known shopper and the query log.
func (s *ProfileSync) Persist(ctx context.Context) error {
	logger.Section("Persist State")
	defer logger.Timed("persist")()

	if s.profiles != nil {
		for _, snapshot := range s.snapshots() {
			if err := s.profiles.Save(ctx, snapshot); err != nil {
				return fmt.Errorf("save profile %s: %w", snapshot.UserID, err)
			}
			logger.Debug("Saved profile %s", snapshot.UserID)
		}
	}

	if s.queries != nil {
		if err := s.queries.SaveQueryLog(ctx, s.search.QueryLogSnapshot()); err != nil {
			return fmt.Errorf("save query log: %w", err)
		}
		logger.Debug("Saved query log")
	}

	return nil
}

// snapshots builds one snapshot per shopper with a behaviour profile or
// stored preferences, ordered by user ID.
func (s *ProfileSync) snapshots() []domain.ProfileSnapshot {
	behaviors := make(map[string]*domain.UserBehavior)
	for _, b := range s.recommendations.Behaviors() {
		behaviors[b.UserID] = b
	}
	prefs := s.personalization.AllPreferences()

	ids := slices.Collect(maps.Keys(behaviors))
	for id := range prefs {
		if _, ok := behaviors[id]; !ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	now := s.now()
	out := make([]domain.ProfileSnapshot, 0, len(ids))
	for _, id := range ids {
		p, ok := prefs[id]
		if !ok {
			p = s.personalization.Preferences(id)
		}
		out = append(out, domain.ProfileSnapshot{
			UserID:      id,
			Behavior:    behaviors[id],
			Preferences: p,
			SavedAt:     now,
		})
	}
	return out
}

// Restore loads stored profiles and the query log into the engines. An
// empty stored query log leaves the in-memory log, including any seeded
// popular queries, untouched.
func (s *ProfileSync) Restore(ctx context.Context) error {
	logger.Section("Restore State")
	defer logger.Timed("restore")()

	if s.profiles != nil {
		snapshots, err := s.profiles.List(ctx)
		if err != nil {
			return fmt.Errorf("list profiles: %w", err)
		}
		for i := range snapshots {
			s.apply(&snapshots[i])
		}
		logger.Debug("Restored %d profiles", len(snapshots))
	}

	if s.queries != nil {
		snapshot, err := s.queries.LoadQueryLog(ctx)
		if err != nil {
			return fmt.Errorf("load query log: %w", err)
		}
		if len(snapshot.Popular) > 0 || len(snapshot.History) > 0 {
			s.search.RestoreQueryLog(snapshot)
			logger.Debug("Restored query log: %d queries", len(snapshot.Popular))
		}
	}

	return nil
}

func (s *ProfileSync) apply(snapshot *domain.ProfileSnapshot) {
	if snapshot.UserID == "" {
		logger.Warn("Skipping stored profile without user id")
		return
	}
	if snapshot.Behavior != nil {
		behavior := snapshot.Behavior.Clone()
		behavior.UserID = snapshot.UserID
		s.recommendations.LoadBehavior(behavior)
	}
	prefs := snapshot.Preferences
	prefs.UserID = snapshot.UserID
	s.personalization.UpdatePreferences(prefs)
}

// Export returns the shopper's current profile. In-memory state wins over
// storage; a shopper unknown to both gets default preferences and no behaviour.
func (s *ProfileSync) Export(ctx context.Context, userID string) (*domain.ProfileSnapshot, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", domain.ErrInvalidInput)
	}

	behavior, hasBehavior := s.recommendations.UserBehavior(userID)
	_, hasPrefs := s.personalization.AllPreferences()[userID]

	if !hasBehavior && !hasPrefs && s.profiles != nil {
		stored, err := s.profiles.Get(ctx, userID)
		switch {
		case err == nil:
			return stored, nil
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("get profile %s: %w", userID, err)
		}
	}

	return &domain.ProfileSnapshot{
		UserID:      userID,
		Behavior:    behavior,
		Preferences: s.personalization.Preferences(userID),
		SavedAt:     s.now(),
	}, nil
}

// Forget removes the shopper from the engines and from storage.
func (s *ProfileSync) Forget(ctx context.Context, userID string) error {
	s.personalization.Reset(userID)

	if s.profiles != nil {
		if err := s.profiles.Delete(ctx, userID); err != nil {
			return fmt.Errorf("delete profile %s: %w", userID, err)
		}
	}
	return nil
}
