// Package codec encodes persisted engine state as versioned JSON envelopes.
//
// Every blob written by the SQLite and Badger stores has the shape
//
//	{"schema_version": 1, "kind": "profile", "saved_at": "...", "payload": {...}}
//
// so that a future layout change can be detected instead of silently
// misread. Decoding a blob with an unknown version or the wrong kind fails
// with domain.ErrUnsupportedSchema.
package codec

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// Kind names the payload type inside an envelope.
type Kind string

// Payload kinds.
const (
	KindProfile  Kind = "profile"
	KindQueryLog Kind = "query_log"
)

type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Kind          Kind            `json:"kind"`
	SavedAt       time.Time       `json:"saved_at"`
	Payload       json.RawMessage `json:"payload"`
}

// Encode wraps payload in an envelope of the given kind.
func Encode(kind Kind, savedAt time.Time, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", kind, err)
	}
	data, err := json.Marshal(envelope{
		SchemaVersion: domain.ProfileSchemaVersion,
		Kind:          kind,
		SavedAt:       savedAt.UTC(),
		Payload:       raw,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", kind, err)
	}
	return data, nil
}

// Decode unwraps an envelope of the given kind into out and returns its save time.
func Decode(kind Kind, data []byte, out any) (time.Time, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return time.Time{}, fmt.Errorf("unmarshal %s envelope: %w", kind, err)
	}
	if env.SchemaVersion != domain.ProfileSchemaVersion {
		return time.Time{}, fmt.Errorf("%s schema version %d: %w",
			kind, env.SchemaVersion, domain.ErrUnsupportedSchema)
	}
	if env.Kind != kind {
		return time.Time{}, fmt.Errorf("expected %s, found %q: %w", kind, env.Kind, domain.ErrUnsupportedSchema)
	}
	if err := json.Unmarshal(env.Payload, out); err != nil {
		return time.Time{}, fmt.Errorf("unmarshal %s: %w", kind, err)
	}
	return env.SavedAt, nil
}

// EncodeProfile encodes a shopper profile.
func EncodeProfile(snapshot domain.ProfileSnapshot) ([]byte, error) {
	return Encode(KindProfile, snapshot.SavedAt, snapshot)
}

// DecodeProfile decodes a shopper profile. Missing preference slices and
// behaviour maps are filled in so decoded profiles behave like fresh ones.
func DecodeProfile(data []byte) (domain.ProfileSnapshot, error) {
	var snapshot domain.ProfileSnapshot
	if _, err := Decode(KindProfile, data, &snapshot); err != nil {
		return domain.ProfileSnapshot{}, err
	}
	normalizeProfile(&snapshot)
	return snapshot, nil
}

// EncodeQueryLog encodes the query popularity log.
func EncodeQueryLog(snapshot domain.QueryLogSnapshot, savedAt time.Time) ([]byte, error) {
	return Encode(KindQueryLog, savedAt, snapshot)
}

// DecodeQueryLog decodes the query popularity log.
func DecodeQueryLog(data []byte) (domain.QueryLogSnapshot, error) {
	var snapshot domain.QueryLogSnapshot
	if _, err := Decode(KindQueryLog, data, &snapshot); err != nil {
		return domain.QueryLogSnapshot{}, err
	}
	return snapshot, nil
}

func normalizeProfile(s *domain.ProfileSnapshot) {
	p := &s.Preferences
	if p.UserID == "" {
		p.UserID = s.UserID
	}
	p.FavoriteCategories = orEmpty(p.FavoriteCategories)
	p.FavoriteBrands = orEmpty(p.FavoriteBrands)
	p.PreferredSizes = orEmpty(p.PreferredSizes)
	p.PreferredColors = orEmpty(p.PreferredColors)

	b := s.Behavior
	if b == nil {
		return
	}
	fresh := domain.NewUserBehavior(b.UserID)
	if b.ProductViews == nil {
		b.ProductViews = fresh.ProductViews
	}
	if b.Purchases == nil {
		b.Purchases = fresh.Purchases
	}
	if b.WishlistItems == nil {
		b.WishlistItems = fresh.WishlistItems
	}
	if b.SearchQueries == nil {
		b.SearchQueries = fresh.SearchQueries
	}
	if b.CategoryPreferences == nil {
		b.CategoryPreferences = fresh.CategoryPreferences
	}
	if b.BrandPreferences == nil {
		b.BrandPreferences = fresh.BrandPreferences
	}
	if b.SizePreferences == nil {
		b.SizePreferences = fresh.SizePreferences
	}
	if b.ColorPreferences == nil {
		b.ColorPreferences = fresh.ColorPreferences
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
