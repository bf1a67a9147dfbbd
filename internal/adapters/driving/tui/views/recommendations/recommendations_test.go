package recommendations

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

type mockCatalog struct {
	products []domain.Product
	err      error
}

func (m *mockCatalog) Products(context.Context) ([]domain.Product, error) {
	return m.products, m.err
}

type mockPersonalization struct {
	calls     int
	lastRctx  domain.RecommendationContext
	lastLimit int
	lastUser  string
}

func (m *mockPersonalization) Preferences(userID string) domain.UserPreferences {
	return domain.DefaultUserPreferences(userID)
}
func (m *mockPersonalization) UpdatePreferences(domain.UserPreferences) {}
func (m *mockPersonalization) SetEnabled(string, bool) {}
func (m *mockPersonalization) TrackInteraction(string, domain.Interaction) error {
	return nil
}
func (m *mockPersonalization) Recommendations(
	userID string, catalog []domain.Product, rctx domain.RecommendationContext, limit int,
) []domain.Product {
	m.calls++
	m.lastUser = userID
	m.lastRctx = rctx
	m.lastLimit = limit
	if len(catalog) > limit {
		return catalog[:limit]
	}
	return catalog
}
func (m *mockPersonalization) SimilarProducts(string, string, []domain.Product, int) []domain.Product {
	return nil
}
func (m *mockPersonalization) SortOrder(_ string, products []domain.Product) []domain.Product {
	return products
}
func (m *mockPersonalization) Reset(string) {}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Silk Evening Dress", Brand: "Luxury Brand", Category: "women", Price: 299.99, InStock: true},
		{ID: "2", Name: "Cotton Tee", Brand: "Basics", Category: "men", Price: 19.5, InStock: true},
		{ID: "3", Name: "Leather Boots", Brand: "Trail", Category: "shoes", Price: 149, InStock: true},
	}
}

var morningInMay = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestView(catalog *mockCatalog, prefs *mockPersonalization) *View {
	v := NewView(nil, nil, catalog, prefs, "shopper-1").WithClock(func() time.Time { return morningInMay })
	v.SetDimensions(100, 40)
	return v
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil, nil, "")

	require.NotNil(t, v)
	assert.Equal(t, 10, v.limit)
	assert.NotNil(t, v.styles)
}

func TestView_Options(t *testing.T) {
	v := NewView(nil, nil, nil, nil, "")
	ctx := context.WithValue(context.Background(), struct{}{}, 1)

	v.WithContext(ctx).WithLimit(-1)
	assert.Equal(t, ctx, v.ctx)
	assert.Equal(t, 10, v.limit)

	v.WithLimit(2)
	assert.Equal(t, 2, v.limit)
}

func TestView_Init_LoadsWithClockContext(t *testing.T) {
	prefs := &mockPersonalization{}
	v := newTestView(&mockCatalog{products: testProducts()}, prefs).WithLimit(2)

	cmd := v.Init()
	assert.Contains(t, v.View(), "Loading recommendations...")
	v.Update(cmd())

	assert.Len(t, v.Products(), 2)
	assert.Equal(t, "shopper-1", prefs.lastUser)
	assert.Equal(t, 2, prefs.lastLimit)
	assert.Equal(t, domain.Morning, prefs.lastRctx.TimeOfDay)
	assert.Equal(t, domain.Spring, prefs.lastRctx.Season)
	assert.Equal(t, domain.Occasion(""), prefs.lastRctx.Occasion)

	out := v.View()
	assert.Contains(t, out, "For you")
	assert.Contains(t, out, "morning · spring · any occasion")
	assert.Contains(t, out, "Picked for you (2)")
}

func TestView_Load_Errors(t *testing.T) {
	t.Run("no personalization", func(t *testing.T) {
		v := newTestView(&mockCatalog{}, nil)
		v.personalization = nil
		v.Update(v.Init()())

		assert.ErrorIs(t, v.Err(), ErrNoPersonalization)
		assert.Contains(t, v.View(), "Error: recommendations are unavailable")
	})

	t.Run("no catalog", func(t *testing.T) {
		v := NewView(nil, nil, nil, &mockPersonalization{}, "")
		v.Update(v.Init()())

		assert.ErrorIs(t, v.Err(), domain.ErrCatalogUnavailable)
	})

	t.Run("catalog failure", func(t *testing.T) {
		boom := errors.New("disk gone")
		v := newTestView(&mockCatalog{err: boom}, &mockPersonalization{})
		v.Update(v.Init()())

		assert.ErrorIs(t, v.Err(), boom)
	})
}

func TestView_Refresh(t *testing.T) {
	prefs := &mockPersonalization{}
	v := newTestView(&mockCatalog{products: testProducts()}, prefs)
	v.Update(v.Init()())

	_, cmd := v.Update(keyMsg("r"))
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, 2, prefs.calls)
}

func TestView_CatalogChanged(t *testing.T) {
	catalog := &mockCatalog{products: testProducts()}
	v := newTestView(catalog, &mockPersonalization{})
	v.Update(v.Init()())
	catalog.products = testProducts()[:1]

	_, cmd := v.Update(messages.CatalogChanged{})
	v.Update(cmd())

	assert.Len(t, v.Products(), 1)
}

func TestView_OccasionCycles(t *testing.T) {
	prefs := &mockPersonalization{}
	v := newTestView(&mockCatalog{products: testProducts()}, prefs)

	_, cmd := v.Update(keyMsg("o"))
	v.Update(cmd())

	assert.Equal(t, domain.OccasionCasual, prefs.lastRctx.Occasion)
	assert.Contains(t, v.View(), "casual")
	assert.Equal(t, domain.OccasionCasual, v.Context().Occasion)
}

func TestNextOccasion(t *testing.T) {
	assert.Equal(t, domain.OccasionCasual, nextOccasion(""))
	assert.Equal(t, domain.Occasion(""), nextOccasion(domain.OccasionSport))
	assert.Equal(t, domain.Occasion(""), nextOccasion("unknown"))
}

func TestView_Open(t *testing.T) {
	v := newTestView(&mockCatalog{products: testProducts()}, &mockPersonalization{})
	v.Update(v.Init()())

	v.Update(keyMsg("j"))
	_, cmd := v.Update(keyMsg("enter"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ProductSelected{Product: testProducts()[1]}, cmd())
}

func TestView_Open_EmptyList(t *testing.T) {
	v := newTestView(&mockCatalog{}, &mockPersonalization{})

	_, cmd := v.Update(keyMsg("enter"))

	assert.Nil(t, cmd)
}

func TestView_Esc(t *testing.T) {
	v := newTestView(&mockCatalog{}, &mockPersonalization{})

	_, cmd := v.Update(keyMsg("esc"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil, nil, nil, nil, "")

	v.Update(tea.WindowSizeMsg{Width: 90, Height: 30})

	assert.True(t, v.ready)
	assert.Equal(t, 90, v.width)
}
