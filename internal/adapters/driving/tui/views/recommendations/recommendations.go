// Package recommendations provides the personalized picks view for the TUI.
package recommendations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
)

// ErrNoPersonalization is reported when no personalization service is wired.
var ErrNoPersonalization = errors.New("recommendations are unavailable")

// occasions is the cycle the occasion key steps through. Empty means any.
var occasions = []domain.Occasion{
	"",
	domain.OccasionCasual,
	domain.OccasionWork,
	domain.OccasionFormal,
	domain.OccasionParty,
	domain.OccasionSport,
}

// View lists recommendations for the shopper in the current context.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	list   *list.ProductList

	catalog         driven.Catalog
	personalization driving.PersonalizationService
	userID          string
	limit           int
	ctx             context.Context
	now             func() time.Time

	occasion domain.Occasion
	rctx     domain.RecommendationContext
	loading  bool
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a recommendations view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	catalog driven.Catalog,
	personalization driving.PersonalizationService,
	userID string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:          s,
		keymap:          km,
		list:            list.NewProductList(s, "Picked for you"),
		catalog:         catalog,
		personalization: personalization,
		userID:          userID,
		limit:           10,
		ctx:             context.Background(),
		now:             time.Now,
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithLimit sets how many recommendations are listed.
func (v *View) WithLimit(n int) *View {
	if n > 0 {
		v.limit = n
	}
	return v
}

// WithClock replaces the clock used for time of day and season.
func (v *View) WithClock(now func() time.Time) *View {
	v.now = now
	return v
}

// Init loads recommendations.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	v.loading = true
	v.rctx = domain.RecommendationContext{Occasion: v.occasion}.WithDefaults(v.now())
	rctx := v.rctx
	limit := v.limit
	return func() tea.Msg {
		if v.personalization == nil {
			return messages.RecommendationsLoaded{Err: ErrNoPersonalization}
		}
		if v.catalog == nil {
			return messages.RecommendationsLoaded{Err: domain.ErrCatalogUnavailable}
		}
		products, err := v.catalog.Products(v.ctx)
		if err != nil {
			return messages.RecommendationsLoaded{Err: fmt.Errorf("loading catalog: %w", err)}
		}
		return messages.RecommendationsLoaded{
			Products: v.personalization.Recommendations(v.userID, products, rctx, limit),
		}
	}
}

// Update handles messages for the recommendations view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.RecommendationsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.list.SetProducts(msg.Products)
		return v, nil

	case messages.CatalogChanged:
		return v, v.load()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(key, v.keymap.Refresh):
		return v, v.load()
	case key == "o":
		v.occasion = nextOccasion(v.occasion)
		return v, v.load()
	case keymap.Matches(key, v.keymap.Select):
		p := v.list.SelectedProduct()
		if p == nil {
			return v, nil
		}
		product := *p
		return v, func() tea.Msg { return messages.ProductSelected{Product: product} }
	}
	return v, nil
}

func nextOccasion(current domain.Occasion) domain.Occasion {
	for i, o := range occasions {
		if o == current {
			return occasions[(i+1)%len(occasions)]
		}
	}
	return occasions[0]
}

// View renders the recommendations view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("For you"))
	b.WriteString("\n")

	occasion := "any occasion"
	if v.rctx.Occasion != "" {
		occasion = string(v.rctx.Occasion)
	}
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%s · %s · %s", v.rctx.TimeOfDay, v.rctx.Season, occasion)))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading recommendations..."))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] open  [o] occasion  [r] refresh  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetDimensions(width, max(height-8, 4))
}

// Products returns the listed recommendations.
func (v *View) Products() []domain.Product {
	return v.list.Products()
}

// Context returns the context the last load used.
func (v *View) Context() domain.RecommendationContext {
	return v.rctx
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
